package service

import (
	"math"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/extract"
	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/utils"
)

type mensalAcc struct {
	receita  float64
	lucro    float64
	cupons   float64
	produtos int
}

// CompareYoY builds the fixed 12-row month-by-month comparison. Prior-year
// figures come from the historical records; only the month matching the
// current extraction period receives current-year totals, summed from the
// non-total category rows. Variances are left at zero when the prior-year
// denominator is not positive — "not comparable", not "no change".
func CompareYoY(historico []model.HistoricalRecord, categorias []model.CategoryRecord, atual model.Period) []model.YoYRow {
	hist := make(map[int]*mensalAcc)
	for _, h := range historico {
		m := hist[h.Mes]
		if m == nil {
			m = &mensalAcc{}
			hist[h.Mes] = m
		}
		m.receita += h.VlrVenda
		m.lucro += h.VlrLucro
		m.cupons += h.QtdeDocumentos
		m.produtos++
	}

	var receitaAtual, lucroAtual, cuponsAtual float64
	for _, c := range categorias {
		receitaAtual += c.VlrVenda
		lucroAtual += c.VlrLucro
		cuponsAtual += c.QtdeDocumentos
	}
	margemAtual := 0.0
	if receitaAtual > 0 {
		margemAtual = lucroAtual / receitaAtual * 100
	}

	out := make([]model.YoYRow, 0, 12)
	for mes := 1; mes <= 12; mes++ {
		h := hist[mes]
		if h == nil {
			h = &mensalAcc{}
		}
		margemPrev := 0.0
		if h.receita > 0 {
			margemPrev = h.lucro / h.receita * 100
		}

		row := model.YoYRow{
			Mes:         extract.NomeMes(mes),
			MesNum:      mes,
			ReceitaPrev: utils.Round2(h.receita),
			LucroPrev:   utils.Round2(h.lucro),
			MargemPrev:  utils.Round2(margemPrev),
			CuponsPrev:  math.Round(h.cupons),
			SKUsPrev:    h.produtos,
		}

		if mes == atual.Mes && len(categorias) > 0 {
			row.ReceitaAtual = utils.Round2(receitaAtual)
			row.LucroAtual = utils.Round2(lucroAtual)
			row.MargemAtual = utils.Round2(margemAtual)
			row.CuponsAtual = math.Round(cuponsAtual)
			if row.ReceitaPrev > 0 {
				row.VarReceitaPct = utils.Round2((receitaAtual - row.ReceitaPrev) / row.ReceitaPrev * 100)
			}
			if row.LucroPrev > 0 {
				row.VarLucroPct = utils.Round2((lucroAtual - row.LucroPrev) / row.LucroPrev * 100)
			}
		}
		out = append(out, row)
	}
	return out
}
