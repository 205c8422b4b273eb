package attendance

import (
	"io"

	"go-vigilancia/internal/shared/apperror"

	"github.com/xuri/excelize/v2"
)

// MergeRegion is a rectangle of cells sharing one value, 0-based and
// inclusive on both ends.
type MergeRegion struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Sheet is the raw cell matrix of the first worksheet plus its merge
// regions. Rows may be ragged; callers index defensively.
type Sheet struct {
	Name   string
	Rows   [][]string
	Merges []MergeRegion
}

// LoadSheet reads the first worksheet of an xlsx stream.
func LoadSheet(reader io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return Sheet{}, apperror.Wrap(err, apperror.CodeInvalidInput, "File is not a readable spreadsheet", 400)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	rows, err := f.GetRows(name)
	if err != nil {
		return Sheet{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Could not read worksheet", 400)
	}

	sheet := Sheet{Name: name, Rows: rows}

	merges, err := f.GetMergeCells(name)
	if err != nil {
		return Sheet{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Could not read merge regions", 400)
	}
	for _, m := range merges {
		sc, sr, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			continue
		}
		ec, er, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			continue
		}
		sheet.Merges = append(sheet.Merges, MergeRegion{
			StartRow: sr - 1,
			StartCol: sc - 1,
			EndRow:   er - 1,
			EndCol:   ec - 1,
		})
	}

	return sheet, nil
}

func (s Sheet) cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	if col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][col]
}

// flattened returns a copy of the matrix where every cell of a merged
// region carries the region's anchor value.
func (s Sheet) flattened() [][]string {
	width := 0
	for _, r := range s.Rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for _, m := range s.Merges {
		if m.EndCol+1 > width {
			width = m.EndCol + 1
		}
	}

	height := len(s.Rows)
	for _, m := range s.Merges {
		if m.EndRow+1 > height {
			height = m.EndRow + 1
		}
	}

	out := make([][]string, height)
	for i := range out {
		out[i] = make([]string, width)
		if i < len(s.Rows) {
			copy(out[i], s.Rows[i])
		}
	}

	for _, m := range s.Merges {
		anchor := s.cell(m.StartRow, m.StartCol)
		for r := m.StartRow; r <= m.EndRow; r++ {
			for c := m.StartCol; c <= m.EndCol; c++ {
				out[r][c] = anchor
			}
		}
	}
	return out
}
