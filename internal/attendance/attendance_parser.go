package attendance

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go-vigilancia/internal/shared/apperror"
	"go-vigilancia/internal/shared/timeband"

	"go.uber.org/zap"
)

// Parser extracts attendance records from the kind of sheet the
// monitoring stations hand in: a group-label row with one merged block
// per calendar day, a sub-header row naming the punch columns, then one
// row per employee. Irregular cells are skipped, never fatal.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger ...*zap.Logger) *Parser {
	l := zap.L().Named("attendance.parser")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.parser")
	}
	return &Parser{logger: l}
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ñ", "n",
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(accentReplacer.Replace(s)))
}

var spanishMonths = map[string]time.Month{
	"ene": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"sep": time.September,
	"set": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December,
}

type dayBlock struct {
	label string
	cols  []int
}

type blockLayout struct {
	date      time.Time
	entries   []int
	exits     []int
	holiday   int
	worked    int
	hasWorked bool
}

// Parse walks the sheet and returns one record per employee-day that
// shows any punches or an explicit holiday mark.
func (p *Parser) Parse(sheet Sheet, yearHint int) ([]AttendanceRecord, error) {
	grid := sheet.flattened()

	subHeader := -1
	for i, row := range grid {
		for _, cell := range row {
			if strings.Contains(normalize(cell), "legajo") {
				subHeader = i
				break
			}
		}
		if subHeader >= 0 {
			break
		}
	}
	if subHeader < 0 || subHeader == 0 {
		return nil, apperror.New(apperror.CodeInvalidInput, "Sheet has no recognizable header", 400)
	}
	groupRow := subHeader - 1

	colLegajo, colName, colDest, colEntity := -1, -1, -1, -1
	for c, cell := range grid[subHeader] {
		n := normalize(cell)
		switch {
		case strings.Contains(n, "legajo"):
			colLegajo = c
		case strings.Contains(n, "nombre"):
			colName = c
		case strings.Contains(n, "destino"):
			colDest = c
		case strings.Contains(n, "entidad"):
			colEntity = c
		}
	}
	// data begins right after the rightmost fixed column; 4 is only
	// the fallback when none was located
	dataStart := -1
	for _, c := range []int{colLegajo, colName, colDest, colEntity} {
		if c+1 > dataStart {
			dataStart = c + 1
		}
	}
	if dataStart < 0 {
		dataStart = 4
	}

	year := yearHint
	if year == 0 {
		year = time.Now().Year()
	}

	layouts := p.resolveBlocks(grid, groupRow, subHeader, dataStart, year)

	var records []AttendanceRecord
	for r := subHeader + 1; r < len(grid); r++ {
		legajo := strings.TrimSpace(cellAt(grid, r, colLegajo))
		if legajo == "" {
			continue
		}

		for _, layout := range layouts {
			rec := AttendanceRecord{
				Legajo:      legajo,
				Name:        strings.TrimSpace(cellAt(grid, r, colName)),
				Destination: strings.TrimSpace(cellAt(grid, r, colDest)),
				Entity:      strings.TrimSpace(cellAt(grid, r, colEntity)),
				Date:        layout.date,
			}

			n := len(layout.entries)
			if len(layout.exits) < n {
				n = len(layout.exits)
			}
			for i := 0; i < n; i++ {
				entry, ok := parseTimeCell(cellAt(grid, r, layout.entries[i]))
				if !ok {
					continue
				}
				exit, ok := parseTimeCell(cellAt(grid, r, layout.exits[i]))
				if !ok {
					continue
				}
				sm, _ := timeband.ToMinutes(entry)
				em, _ := timeband.ToMinutes(exit)
				ws, we := timeband.Wrap(sm, em)
				split, err := timeband.Classify(entry, exit)
				if err != nil {
					continue
				}
				rec.Pairs = append(rec.Pairs, ClockPair{
					Entry:           entry,
					Exit:            exit,
					DurationMinutes: we - ws,
					DiurnalHours:    split.Diurnal,
					NocturnalHours:  split.Nocturnal,
				})
			}

			rec.Holiday = layout.holiday >= 0 && truthy(cellAt(grid, r, layout.holiday))
			if layout.hasWorked {
				rec.WorkedDay = truthy(cellAt(grid, r, layout.worked))
			} else {
				rec.WorkedDay = len(rec.Pairs) > 0
			}

			if len(rec.Pairs) == 0 && !rec.Holiday && !rec.WorkedDay {
				continue
			}

			d, noct := 0.0, 0.0
			for _, pair := range rec.Pairs {
				d += pair.DiurnalHours
				noct += pair.NocturnalHours
			}
			rec.DiurnalHours = math.Round(d*100) / 100
			rec.NocturnalHours = math.Round(noct*100) / 100

			records = append(records, rec)
		}
	}

	return records, nil
}

// resolveBlocks groups consecutive identical day labels and classifies
// each block's sub-columns. Blocks with unparseable labels are dropped.
func (p *Parser) resolveBlocks(grid [][]string, groupRow, subHeader, dataStart, year int) []blockLayout {
	width := len(grid[groupRow])
	if len(grid[subHeader]) > width {
		width = len(grid[subHeader])
	}

	var blocks []dayBlock
	for c := dataStart; c < width; c++ {
		label := strings.TrimSpace(cellAt(grid, groupRow, c))
		if label == "" {
			continue
		}
		if len(blocks) > 0 && blocks[len(blocks)-1].label == label &&
			blocks[len(blocks)-1].cols[len(blocks[len(blocks)-1].cols)-1] == c-1 {
			blocks[len(blocks)-1].cols = append(blocks[len(blocks)-1].cols, c)
			continue
		}
		blocks = append(blocks, dayBlock{label: label, cols: []int{c}})
	}

	var layouts []blockLayout
	for _, b := range blocks {
		date, ok := parseDayLabel(b.label, year)
		if !ok {
			p.logger.Debug("skipping day block with unparseable label",
				zap.String("label", b.label),
			)
			continue
		}

		layout := blockLayout{date: date, holiday: -1, worked: -1}
		for _, c := range b.cols {
			n := normalize(cellAt(grid, subHeader, c))
			switch {
			case strings.Contains(n, "entrada"):
				layout.entries = append(layout.entries, c)
			case strings.Contains(n, "salida"):
				layout.exits = append(layout.exits, c)
			case strings.Contains(n, "feriado"):
				layout.holiday = c
			case strings.Contains(n, "dia trabajado"):
				layout.worked = c
				layout.hasWorked = true
			}
		}
		layouts = append(layouts, layout)
	}
	return layouts
}

// parseDayLabel extracts "<day> <mon>" from labels like "1 ene",
// "Lun 01-Ene" or "15/sep". Anything without a day number and a Spanish
// month abbreviation is rejected.
func parseDayLabel(label string, year int) (time.Time, bool) {
	tokens := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	day := 0
	var month time.Month
	for _, tok := range tokens {
		if day == 0 {
			if v, err := strconv.Atoi(tok); err == nil && v >= 1 && v <= 31 {
				day = v
				continue
			}
		}
		if month == 0 {
			n := normalize(tok)
			if len(n) >= 3 {
				if m, ok := spanishMonths[n[:3]]; ok {
					month = m
				}
			}
		}
	}
	if day == 0 || month == 0 {
		return time.Time{}, false
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// parseTimeCell accepts "H:mm", "HH:mm", "HH:mm:ss" and Excel
// day-fraction numerics, yielding a normalized "HH:mm".
func parseTimeCell(cell string) (string, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return "", false
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) < 2 {
			return "", false
		}
		h, m := parts[0], parts[1]
		if len(h) == 1 {
			h = "0" + h
		}
		if len(m) > 2 {
			m = m[:2]
		}
		candidate := h + ":" + m
		if _, err := timeband.ToMinutes(candidate); err != nil {
			return "", false
		}
		return candidate, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return "", false
	}
	frac := v - math.Floor(v)
	minutes := int(math.Round(frac*timeband.MinutesPerDay)) % timeband.MinutesPerDay
	return timeband.FormatMinutes(minutes), true
}

func truthy(cell string) bool {
	n := normalize(cell)
	return n != "" && n != "0" && n != "no" && n != "false"
}

func cellAt(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return ""
	}
	return grid[row][col]
}
