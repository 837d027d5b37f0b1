package fileio

import (
	"bytes"
	"errors"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("xlsx: workbook has no sheets")
	}
	return f.GetRows(sheet)
}
