package extract

import (
	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/utils"
)

// VitalFewResult holds the Curva A rows for the month.
type VitalFewResult struct {
	Produtos []model.VitalFewRecord
	Puladas  int
}

// VitalFew reads the Curva A sheet: single-state, one row per product, no
// context carryover. The identity cell sits in column A.
func VitalFew(grid [][]string, p model.Period) VitalFewResult {
	var res VitalFewResult
	if len(grid) <= headerRows {
		return res
	}

	for _, row := range grid[headerRows:] {
		colA := cell(row, 0)
		if colA == "" || colA == "Total" {
			if colA == "" && !blank(row) {
				res.Puladas++
			}
			continue
		}

		nome, codigo, _ := splitIdentity(colA)
		vlrVenda := utils.ParseFloatBR(cell(row, 6))
		vlrLucro := utils.ParseFloatBR(cell(row, 12))
		margem := 0.0
		if vlrVenda > 0 {
			margem = vlrLucro / vlrVenda * 100
		}
		markdown := utils.ParseFloatBR(cell(row, 8))
		markdownUlt := utils.ParseFloatBR(cell(row, 9))

		res.Produtos = append(res.Produtos, model.VitalFewRecord{
			Periodo:            p,
			Produto:            nome,
			Codigo:             codigo,
			QtdeVenda:          utils.ParseFloatBR(cell(row, 1)),
			QtdeDocumentos:     utils.ParseFloatBR(cell(row, 2)),
			VlrVenda:           vlrVenda,
			MarkdownPct:        markdown,
			MarkdownUltEntrada: markdownUlt,
			MarkupPct:          utils.ParseFloatBR(cell(row, 10)),
			MarkupUltEntrada:   utils.ParseFloatBR(cell(row, 11)),
			VlrLucro:           vlrLucro,
			CustoMedioLiq:      utils.ParseFloatBR(cell(row, 14)),
			CustoUltEntradaLiq: utils.ParseFloatBR(cell(row, 15)),
			MargemPct:          utils.Round2(margem),
			ErosaoMargem:       utils.Round2(markdown - markdownUlt),
		})
	}
	return res
}
