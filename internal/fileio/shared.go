package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadGrid picks a parser by extension and returns the first sheet as a raw
// cell grid. The ERP export contract is positional (fixed column order,
// fixed header offset), so no header mapping happens here — extractors
// address cells by index.
func ReadGrid(r io.Reader, filename string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}
