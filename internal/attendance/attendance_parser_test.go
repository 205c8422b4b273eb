package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSheet() Sheet {
	return Sheet{
		Name: "ENERO",
		Rows: [][]string{
			{"", "", "", "", "1 ene", "", "", "2 ene", "", "??"},
			{"Legajo", "Nombre", "Destino", "Entidad", "Entrada", "Salida", "Feriado", "Entrada", "Salida", "Entrada"},
			{"1234", "PEREZ JUAN", "Planta Norte", "VyM", "08:00", "16:00", "", "22:00", "06:00", "09:00"},
			{"", "sin legajo", "", "", "08:00", "16:00", "", "", "", ""},
			{"5678", "GOMEZ ANA", "Deposito", "VyM", "", "", "si", "", "", ""},
		},
		Merges: []MergeRegion{
			{StartRow: 0, StartCol: 4, EndRow: 0, EndCol: 6},
			{StartRow: 0, StartCol: 7, EndRow: 0, EndCol: 8},
		},
	}
}

func TestParse_BasicSheet(t *testing.T) {
	records, err := NewParser().Parse(testSheet(), 2025)
	assert.NoError(t, err)
	// 1234 has two days, 5678 has one holiday-only day, the row
	// without a legajo is skipped, the "??" block is dropped
	assert.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "1234", first.Legajo)
	assert.Equal(t, "PEREZ JUAN", first.Name)
	assert.Equal(t, "Planta Norte", first.Destination)
	assert.Equal(t, "VyM", first.Entity)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	if assert.Len(t, first.Pairs, 1) {
		assert.Equal(t, "08:00", first.Pairs[0].Entry)
		assert.Equal(t, "16:00", first.Pairs[0].Exit)
		assert.Equal(t, 480, first.Pairs[0].DurationMinutes)
		assert.Equal(t, 8.0, first.Pairs[0].DiurnalHours)
		assert.Equal(t, 0.0, first.Pairs[0].NocturnalHours)
	}
	assert.True(t, first.WorkedDay)
	assert.False(t, first.Holiday)

	second := records[1]
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), second.Date)
	if assert.Len(t, second.Pairs, 1) {
		// wraps midnight
		assert.Equal(t, 480, second.Pairs[0].DurationMinutes)
		assert.Equal(t, 0.0, second.Pairs[0].DiurnalHours)
		assert.Equal(t, 8.0, second.Pairs[0].NocturnalHours)
	}

	holiday := records[2]
	assert.Equal(t, "5678", holiday.Legajo)
	assert.Empty(t, holiday.Pairs)
	assert.True(t, holiday.Holiday)
	assert.False(t, holiday.WorkedDay)
}

func TestParse_NumericDayFractionCells(t *testing.T) {
	sheet := Sheet{
		Rows: [][]string{
			{"", "", "", "", "15 sep", ""},
			{"Legajo", "Nombre", "Destino", "Entidad", "Entrada", "Salida"},
			{"77", "LOPEZ", "Base", "VyM", "0.33333333", "0.66666667"},
		},
		Merges: []MergeRegion{{StartRow: 0, StartCol: 4, EndRow: 0, EndCol: 5}},
	}

	records, err := NewParser().Parse(sheet, 2024)
	assert.NoError(t, err)
	if assert.Len(t, records, 1) && assert.Len(t, records[0].Pairs, 1) {
		assert.Equal(t, "08:00", records[0].Pairs[0].Entry)
		assert.Equal(t, "16:00", records[0].Pairs[0].Exit)
	}
}

func TestParse_ExplicitWorkedDayColumn(t *testing.T) {
	sheet := Sheet{
		Rows: [][]string{
			{"", "", "", "", "3 mar", "", ""},
			{"Legajo", "Nombre", "Destino", "Entidad", "Entrada", "Salida", "Día Trabajado"},
			{"9", "DIAZ", "Base", "VyM", "08:00", "12:00", "no"},
		},
		Merges: []MergeRegion{{StartRow: 0, StartCol: 4, EndRow: 0, EndCol: 6}},
	}

	records, err := NewParser().Parse(sheet, 2024)
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.False(t, records[0].WorkedDay)
		assert.Len(t, records[0].Pairs, 1)
	}
}

func TestParse_DayBlockRightAfterNarrowFixedColumns(t *testing.T) {
	// only three fixed columns, so the first day block starts at
	// index 3 and must not be swallowed by the fallback offset
	sheet := Sheet{
		Rows: [][]string{
			{"", "", "", "1 ene", "", "2 ene", ""},
			{"Legajo", "Nombre", "Destino", "Entrada", "Salida", "Entrada", "Salida"},
			{"1234", "PEREZ JUAN", "Planta", "08:00", "16:00", "09:00", "17:00"},
		},
		Merges: []MergeRegion{
			{StartRow: 0, StartCol: 3, EndRow: 0, EndCol: 4},
			{StartRow: 0, StartCol: 5, EndRow: 0, EndCol: 6},
		},
	}

	records, err := NewParser().Parse(sheet, 2025)
	assert.NoError(t, err)
	if assert.Len(t, records, 2) {
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
		if assert.Len(t, records[0].Pairs, 1) {
			assert.Equal(t, "08:00", records[0].Pairs[0].Entry)
			assert.Equal(t, "16:00", records[0].Pairs[0].Exit)
		}
		assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), records[1].Date)
	}
}

func TestParse_NoHeaderFails(t *testing.T) {
	sheet := Sheet{Rows: [][]string{{"nada", "que", "ver"}}}
	_, err := NewParser().Parse(sheet, 2024)
	assert.Error(t, err)
}

func TestParseDayLabel(t *testing.T) {
	cases := []struct {
		label string
		ok    bool
		month time.Month
		day   int
	}{
		{"1 ene", true, time.January, 1},
		{"Lun 15-Sep", true, time.September, 15},
		{"15/set", true, time.September, 15},
		{"31 DIC", true, time.December, 31},
		{"30 feb", false, 0, 0},
		{"feriado", false, 0, 0},
		{"", false, 0, 0},
	}
	for _, tc := range cases {
		d, ok := parseDayLabel(tc.label, 2024)
		assert.Equal(t, tc.ok, ok, tc.label)
		if tc.ok {
			assert.Equal(t, tc.month, d.Month(), tc.label)
			assert.Equal(t, tc.day, d.Day(), tc.label)
		}
	}
}

func TestParseTimeCell(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"08:00", "08:00", true},
		{"8:05", "08:05", true},
		{"23:59:59", "23:59", true},
		{"0.5", "12:00", true},
		{"", "", false},
		{"mediodia", "", false},
		{"25:00", "", false},
	}
	for _, tc := range cases {
		got, ok := parseTimeCell(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.out, got, tc.in)
	}
}
