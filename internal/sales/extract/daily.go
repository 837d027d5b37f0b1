package extract

import (
	"strings"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/utils"
)

// scanState is the two-state grammar shared by the daily and historical
// sheets: a populated primary column opens a new context (date or month),
// and rows with an empty primary but populated secondary column are detail
// rows under the open context.
type scanState int

const (
	awaitingContext scanState = iota
	contextOpen
)

// DailyResult carries the emitted records plus the count of rows that
// matched neither grammar state.
type DailyResult struct {
	Vendas  []model.DailyProductRecord
	Puladas int
}

// DailyProducts scans the product-per-day sheet. Column A holds date
// headers ("D/M/YYYY"), column B holds "name||code||erpID" product cells;
// subtotal rows ("Total") close nothing and emit nothing.
func DailyProducts(grid [][]string, p model.Period) DailyResult {
	var res DailyResult
	if len(grid) <= headerRows {
		return res
	}

	st := awaitingContext
	var data string

	for _, row := range grid[headerRows:] {
		colA := cell(row, 0)
		colB := cell(row, 1)

		switch {
		case colA != "" && colA != "Total":
			data = parseDateContext(colA)
			st = contextOpen

		case st == contextOpen && colB != "" && !strings.Contains(colB, "Total"):
			nome, codigo, id := splitIdentity(colB)
			vlrVenda := utils.ParseFloatBR(cell(row, 7))
			vlrLucro := utils.ParseFloatBR(cell(row, 13))
			margem := 0.0
			if vlrVenda > 0 {
				margem = vlrLucro / vlrVenda * 100
			}

			res.Vendas = append(res.Vendas, model.DailyProductRecord{
				Data:               data,
				Periodo:            p,
				Produto:            nome,
				Codigo:             codigo,
				IDERP:              id,
				QtdeVenda:          utils.ParseFloatBR(cell(row, 2)),
				QtdeDocumentos:     utils.ParseFloatBR(cell(row, 3)),
				VlrAcrescimos:      utils.ParseFloatBR(cell(row, 4)),
				VlrDescontos:       utils.ParseFloatBR(cell(row, 5)),
				TicketMedio:        utils.ParseFloatBR(cell(row, 6)),
				VlrVenda:           vlrVenda,
				PartVenda:          utils.ParseFloatBR(cell(row, 8)),
				MarkdownPct:        utils.ParseFloatBR(cell(row, 9)),
				MarkdownUltEntrada: utils.ParseFloatBR(cell(row, 10)),
				MarkupPct:          utils.ParseFloatBR(cell(row, 11)),
				MarkupUltEntrada:   utils.ParseFloatBR(cell(row, 12)),
				VlrLucro:           vlrLucro,
				PartLucro:          utils.ParseFloatBR(cell(row, 14)),
				CustoMedioLiq:      utils.ParseFloatBR(cell(row, 15)),
				CustoUltEntradaLiq: utils.ParseFloatBR(cell(row, 16)),
				MargemPct:          utils.Round2(margem),
			})

		default:
			// subtotal rows and blank filler are expected; anything else
			// non-empty is counted so silent loss stays visible
			if !blank(row) && colA != "Total" && !strings.Contains(colB, "Total") {
				res.Puladas++
			}
		}
	}
	return res
}
