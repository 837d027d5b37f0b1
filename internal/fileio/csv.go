package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV reads a semicolon- or comma-delimited export, sniffing the charset
// first. UTF-8 and Windows-1252 (the usual BR legacy encoding) are handled.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch cs {
	case "windows-1252", "iso-8859-1", "iso-8859-15":
		dec = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	default:
		// assume UTF-8
	}

	// the ERP emits ';' when the decimal comma is in play
	delim := byte(',')
	if i := strings.IndexAny(string(peek), ";,"); i >= 0 && peek[i] == ';' {
		delim = ';'
	}

	cr := csv.NewReader(dec)
	cr.Comma = rune(delim)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
