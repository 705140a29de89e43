package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook renders a single-sheet workbook with the header in row 1
func writeWorkbook(sheetName string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	if err := setRow(f, sheetName, 1, header); err != nil {
		return nil, err
	}
	for rowIndex, row := range rows {
		if err := setRow(f, sheetName, rowIndex+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheetName string, rowNumber int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(values))
	for i, value := range values {
		cells[i] = value
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write Excel row %d: %w", rowNumber, err)
	}
	return nil
}

// readWorkbook returns the rows of the first sheet
func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return rows, nil
}
