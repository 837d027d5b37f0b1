// Package service holds the derivation engine: per-product metrics and the
// 2×2 matrix classification, the year-over-year comparison, the calendar
// dimension and the final table assembly.
package service

import (
	"math"
	"sort"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/utils"
)

type productAcc struct {
	datas   map[string]struct{}
	receita float64
	lucro   float64
	qtde    float64
	cupons  float64
	margens []float64
}

// ProductMetrics aggregates the daily records per product and classifies
// each one on the turnover × margin matrix. curvaA is the set of Curva A
// product names; diasOperacao is the number of distinct operating days in
// the period.
func ProductMetrics(vendas []model.DailyProductRecord, curvaA map[string]struct{}, diasOperacao int, th model.Thresholds) []model.ProductMetric {
	acc := make(map[string]*productAcc)
	for _, v := range vendas {
		p := acc[v.Produto]
		if p == nil {
			p = &productAcc{datas: make(map[string]struct{})}
			acc[v.Produto] = p
		}
		p.datas[v.Data] = struct{}{}
		p.receita += v.VlrVenda
		p.lucro += v.VlrLucro
		p.qtde += v.QtdeVenda
		p.cupons += v.QtdeDocumentos
		if v.VlrVenda > 0 {
			p.margens = append(p.margens, v.VlrLucro/v.VlrVenda*100)
		}
	}

	out := make([]model.ProductMetric, 0, len(acc))
	for nome, p := range acc {
		diasVendidos := len(p.datas)

		giro := 0.0
		if diasOperacao > 0 {
			giro = float64(diasVendidos) / float64(diasOperacao)
		}

		margemMedia := 0.0
		if len(p.margens) > 0 {
			sum := 0.0
			for _, m := range p.margens {
				sum += m
			}
			margemMedia = sum / float64(len(p.margens))
		}

		curva := "B/C"
		if _, ok := curvaA[nome]; ok {
			curva = "A"
		}

		receitaMediaDia := 0.0
		if diasVendidos > 0 {
			receitaMediaDia = p.receita / float64(diasVendidos)
		}

		out = append(out, model.ProductMetric{
			Produto:         nome,
			Curva:           curva,
			DiasVendidos:    diasVendidos,
			DiasOperacao:    diasOperacao,
			Giro:            utils.Round3(giro),
			ReceitaTotal:    utils.Round2(p.receita),
			LucroTotal:      utils.Round2(p.lucro),
			MargemMedia:     utils.Round2(margemMedia),
			QtdeTotal:       utils.Round3(p.qtde),
			CuponsTotal:     math.Round(p.cupons),
			Classificacao:   Classify(giro, margemMedia, th),
			ReceitaMediaDia: utils.Round2(receitaMediaDia),
			GiroDiario:      giro >= th.GiroDiario,
		})
	}

	// descending revenue for presentation; the order carries no meaning
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReceitaTotal != out[j].ReceitaTotal {
			return out[i].ReceitaTotal > out[j].ReceitaTotal
		}
		return out[i].Produto < out[j].Produto
	})
	return out
}

// Classify places a product on the turnover × margin matrix. Both cuts are
// strict: a product sitting exactly on a threshold lands in the lower
// quadrant.
func Classify(giro, margemMedia float64, th model.Thresholds) string {
	altoGiro := giro > th.GiroAlto
	altaMargem := margemMedia > th.MargemAlta
	switch {
	case altoGiro && altaMargem:
		return model.ClasseEstrela
	case altoGiro:
		return model.ClasseGeradorCaixa
	case altaMargem:
		return model.ClasseOportunidade
	default:
		return model.ClassePesoMorto
	}
}

// OperatingDays counts the distinct dates present in the daily records.
func OperatingDays(vendas []model.DailyProductRecord) int {
	datas := make(map[string]struct{})
	for _, v := range vendas {
		datas[v.Data] = struct{}{}
	}
	return len(datas)
}
