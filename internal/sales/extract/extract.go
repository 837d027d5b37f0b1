// Package extract turns the raw ERP export grids into typed records.
//
// Rows 1-2 of every sheet are titles/headers; data starts at row 3. Column
// positions are fixed by contract with the export format — a layout change
// upstream is a compatibility break, not something to auto-detect around.
// Malformed rows are skipped and counted, never half-emitted.
package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// data begins on the third row of every export sheet
const headerRows = 2

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// splitIdentity splits the "name||code||erpID" product cell; absent parts
// stay empty.
func splitIdentity(s string) (nome, codigo, id string) {
	parts := strings.Split(s, "||")
	nome = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		codigo = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		id = strings.TrimSpace(parts[2])
	}
	return nome, codigo, id
}

// parseDateContext converts a "D/M/YYYY" header cell to ISO yyyy-mm-dd.
// Header cells without a slash are carried verbatim, as the legacy pipeline
// did.
func parseDateContext(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}
	d, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	y, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return s
	}
	return fmt.Sprintf("%d-%02d-%02d", y, m, d)
}
