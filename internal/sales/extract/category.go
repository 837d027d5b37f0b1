package extract

import (
	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/utils"
)

// CategoryResult holds the per-category rows plus the sheet's grand-total
// row, which is captured apart and never merged into the category list.
type CategoryResult struct {
	Categorias []model.CategoryRecord
	Total      *model.CategoryRecord
	Puladas    int
}

// Categories reads the monthly per-category sheet: one row per category,
// fixed column order.
func Categories(grid [][]string, p model.Period) CategoryResult {
	var res CategoryResult
	if len(grid) <= headerRows {
		return res
	}

	for _, row := range grid[headerRows:] {
		nome := cell(row, 0)
		if nome == "" {
			if !blank(row) {
				res.Puladas++
			}
			continue
		}

		rec := model.CategoryRecord{
			Periodo:            p,
			Categoria:          nome,
			QtdeVenda:          utils.ParseFloatBR(cell(row, 1)),
			QtdeDocumentos:     utils.ParseFloatBR(cell(row, 2)),
			VlrAcrescimos:      utils.ParseFloatBR(cell(row, 3)),
			VlrDescontos:       utils.ParseFloatBR(cell(row, 4)),
			TicketMedio:        utils.ParseFloatBR(cell(row, 5)),
			VlrVenda:           utils.ParseFloatBR(cell(row, 6)),
			PartVenda:          utils.ParseFloatBR(cell(row, 7)),
			MarkdownPct:        utils.ParseFloatBR(cell(row, 8)),
			MarkdownUltEntrada: utils.ParseFloatBR(cell(row, 9)),
			MarkupPct:          utils.ParseFloatBR(cell(row, 10)),
			MarkupUltEntrada:   utils.ParseFloatBR(cell(row, 11)),
			VlrLucro:           utils.ParseFloatBR(cell(row, 12)),
			PartLucro:          utils.ParseFloatBR(cell(row, 13)),
			CustoMedioLiq:      utils.ParseFloatBR(cell(row, 14)),
			CustoUltEntradaLiq: utils.ParseFloatBR(cell(row, 15)),
		}

		if nome == "Total" {
			res.Total = &rec
			continue
		}
		res.Categorias = append(res.Categorias, rec)
	}
	return res
}
