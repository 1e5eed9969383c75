// Package workbook opens .xlsx files and materializes worksheets as
// sheetload.Table values.
//
// Parsing follows the usual dataframe-reader conventions:
//   - leading empty rows are skipped and the first non-empty row is the header
//   - blank header cells become "Unnamed: <i>" and duplicates become
//     "name.1", "name.2", ...
//   - empty cells are null, boolean cells are booleans, numeric cells with a
//     date number format are dates, other numeric cells are numbers, and
//     everything else is text
//   - each column's type is inferred from its non-null values
//     (see sheetload.InferColumnType)
package workbook
