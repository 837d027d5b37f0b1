package handler

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/thiagusantos-jpg/dubairro/internal/fileio"
)

func readGrid(fh *multipart.FileHeader) ([][]string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	grid, err := fileio.ReadGrid(f, fh.Filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return grid, nil
}

func errNoPeriod(filename string) error {
	return fmt.Errorf("no month/year tag in file name %q", filename)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
