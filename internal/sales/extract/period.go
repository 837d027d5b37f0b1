package extract

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Portuguese month lexicon, full names and the 3-letter aliases the export
// file names use.
var mesesPT = map[string]int{
	"janeiro": 1, "fevereiro": 2, "março": 3, "abril": 4,
	"maio": 5, "junho": 6, "julho": 7, "agosto": 8,
	"setembro": 9, "outubro": 10, "novembro": 11, "dezembro": 12,
	"jan": 1, "fev": 2, "mar": 3, "abr": 4,
	"mai": 5, "jun": 6, "jul": 7, "ago": 8,
	"set": 9, "out": 10, "nov": 11, "dez": 12,
}

// aliases longest-first so "mar" never shadows "março" inside a name
var mesAliases = func() []string {
	out := make([]string, 0, len(mesesPT))
	for k := range mesesPT {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

var rxYear = regexp.MustCompile(`\d{4}`)

// DetectPeriod infers (month, year) from an export file name such as
// "categoria_analisedevendas_jan2026.xlsx". First lexicon hit wins under
// longest-first ordering; both a month alias and a 4-digit year are
// required.
func DetectPeriod(filename string) (mes, ano int, ok bool) {
	base := strings.ToLower(filepath.Base(filename))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, alias := range mesAliases {
		if !strings.Contains(base, alias) {
			continue
		}
		if y := rxYear.FindString(base); y != "" {
			ano, _ = strconv.Atoi(y)
			return mesesPT[alias], ano, true
		}
	}
	return 0, 0, false
}

// NomeMes returns the capitalized Portuguese month name, "" out of range.
func NomeMes(mes int) string {
	if mes < 1 || mes > 12 {
		return ""
	}
	return nomesMeses[mes]
}

var nomesMeses = [13]string{"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}
