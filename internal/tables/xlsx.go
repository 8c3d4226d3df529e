package tables

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of WriteXLSX output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxSheetName = 31

// WriteXLSX writes one sheet per table, header row frozen.
func WriteXLSX(w io.Writer, tables ...*Table) error {
	for _, t := range tables {
		if t.err != nil {
			return t.err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	used := make(map[string]bool)
	for i, t := range tables {
		name := sheetName(t.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
		if err := writeSheet(f, name, t, headerStyle); err != nil {
			return err
		}
	}
	if len(tables) > 0 {
		f.SetActiveSheet(0)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t *Table, headerStyle int) error {
	for col, h := range t.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h.Title); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}
	}

	for r, row := range t.Rows() {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(value)); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if len(t.headers) == 0 {
		return nil
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellValue(c Cell) any {
	switch v := c.Sort.(type) {
	case int, int64, float64:
		return v
	}
	return c.Text
}

// sheetName strips characters Excel rejects and keeps names unique.
func sheetName(title string, i int, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = fmt.Sprintf("Table %d", i+1)
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	base := name
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[name] = true
	return name
}
