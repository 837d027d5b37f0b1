package extract

import (
	"strings"
	"unicode"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/utils"
)

// HistoryResult carries prior-year rows plus skip and anomaly counters.
type HistoryResult struct {
	Registros []model.HistoricalRecord
	Puladas   int
	Anomalias int
}

// History scans the prior-year month-by-month sheet with the same two-state
// grammar as the daily extractor, keyed by month-name header rows instead
// of dates.
//
// Rows with profit below -1000 and revenue below 500 are known data-entry
// glitches in the source export and are dropped. That denylist is exactly
// this pair of conditions — it is not a general outlier filter.
func History(grid [][]string, ano int) HistoryResult {
	var res HistoryResult
	if len(grid) <= headerRows {
		return res
	}

	st := awaitingContext
	mes := 0
	nomeMes := ""

	for _, row := range grid[headerRows:] {
		colA := cell(row, 0)
		colB := cell(row, 1)

		switch {
		case colA != "" && colA != "Total":
			if m, ok := mesesPT[strings.ToLower(colA)]; ok {
				mes = m
				nomeMes = capitalize(strings.ToLower(colA))
				st = contextOpen
			} else if !blank(row) {
				res.Puladas++
			}

		case st == contextOpen && colB != "" && !strings.Contains(colB, "Total"):
			nome, _, _ := splitIdentity(colB)
			vlrVenda := utils.ParseFloatBR(cell(row, 7))
			vlrLucro := utils.ParseFloatBR(cell(row, 13))

			if vlrLucro < -1000 && vlrVenda < 500 {
				res.Anomalias++
				continue
			}

			margem := 0.0
			if vlrVenda > 0 {
				margem = vlrLucro / vlrVenda * 100
			}

			res.Registros = append(res.Registros, model.HistoricalRecord{
				Mes:            mes,
				Ano:            ano,
				NomeMes:        nomeMes,
				Produto:        nome,
				QtdeVenda:      utils.ParseFloatBR(cell(row, 2)),
				QtdeDocumentos: utils.ParseFloatBR(cell(row, 3)),
				VlrVenda:       vlrVenda,
				VlrLucro:       vlrLucro,
				MargemPct:      utils.Round2(margem),
				MarkdownPct:    utils.ParseFloatBR(cell(row, 9)),
			})

		default:
			if !blank(row) && colA != "Total" && !strings.Contains(colB, "Total") {
				res.Puladas++
			}
		}
	}
	return res
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
