package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/sheetload/pkg/sheetload"
	"github.com/xuri/excelize/v2"
)

// Workbook is an open .xlsx file.
// Not safe for concurrent use; the dispatcher materializes sheets one at a time.
type Workbook struct {
	path     string
	file     *excelize.File
	date1904 bool

	// style ID -> whether its number format renders a date
	dateStyles map[int]bool
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet materializes the named worksheet.
func (w *Workbook) Sheet(name string) (*sheetload.Table, error) {
	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", sheetload.ErrSheetParseFailed, name, err)
	}

	table := &sheetload.Table{Name: name}

	start, end := 0, len(rows)
	for start < end && isEmptyRow(rows[start]) {
		start++
	}
	for end > start && isEmptyRow(rows[end-1]) {
		end--
	}
	if start == end {
		return table, nil
	}

	width := 0
	for _, row := range rows[start:end] {
		if len(row) > width {
			width = len(row)
		}
	}

	header, err := w.headerRow(name, start+1, rows[start], width)
	if err != nil {
		return nil, err
	}

	for r := start + 1; r < end; r++ {
		values := make([]sheetload.Value, width)
		for c := 0; c < width; c++ {
			raw := ""
			if c < len(rows[r]) {
				raw = rows[r][c]
			}
			v, err := w.cellValue(name, c+1, r+1, raw)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", sheetload.ErrSheetParseFailed, name, err)
			}
			values[c] = v
		}
		table.Rows = append(table.Rows, values)
	}

	table.Columns = make([]sheetload.Column, width)
	column := make([]sheetload.Value, len(table.Rows))
	for c := 0; c < width; c++ {
		for r, row := range table.Rows {
			column[r] = row[c]
		}
		table.Columns[c] = sheetload.Column{
			Name: header[c],
			Type: sheetload.InferColumnType(column),
		}
	}

	return table, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// headerRow reads the displayed header values and makes them unique column names.
func (w *Workbook) headerRow(sheet string, rowNum int, raw []string, width int) ([]string, error) {
	names := make([]string, width)
	for c := 0; c < width; c++ {
		if c >= len(raw) || raw[c] == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", sheetload.ErrSheetParseFailed, sheet, err)
		}
		display, err := w.file.GetCellValue(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", sheetload.ErrSheetParseFailed, sheet, err)
		}
		names[c] = display
	}
	return uniqueColumnNames(names), nil
}

// cellValue converts one raw cell to a typed value.
// col and row are 1-based.
func (w *Workbook) cellValue(sheet string, col, row int, raw string) (sheetload.Value, error) {
	if raw == "" {
		return sheetload.Null(), nil
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return sheetload.Value{}, err
	}
	cellType, err := w.file.GetCellType(sheet, cell)
	if err != nil {
		return sheetload.Value{}, fmt.Errorf("cell %s: %w", cell, err)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return sheetload.Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return sheetload.Date(t), nil
		}
		return sheetload.Text(raw), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return sheetload.Text(raw), nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return sheetload.Text(raw), nil
	}

	isDate, err := w.isDateCell(sheet, cell)
	if err != nil {
		return sheetload.Value{}, fmt.Errorf("cell %s: %w", cell, err)
	}
	if isDate {
		if t, err := excelize.ExcelDateToTime(n, w.date1904); err == nil {
			return sheetload.Date(t), nil
		}
	}
	return sheetload.Number(n), nil
}

// isDateCell reports whether the cell's number format displays a date or time.
func (w *Workbook) isDateCell(sheet, cell string) (bool, error) {
	styleID, err := w.file.GetCellStyle(sheet, cell)
	if err != nil {
		return false, err
	}
	if isDate, ok := w.dateStyles[styleID]; ok {
		return isDate, nil
	}

	style, err := w.file.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := isBuiltinDateFormat(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}

	w.dateStyles[styleID] = isDate
	return isDate, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

var _ sheetload.Workbook = (*Workbook)(nil)
