package service

import (
	"math"
	"sort"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/utils"
)

// Inputs is everything the assembler packages into the final table set.
type Inputs struct {
	Periodo       model.Period
	AnoAnterior   int
	Categorias    []model.CategoryRecord
	Total         *model.CategoryRecord
	VendasDiarias []model.DailyProductRecord
	CurvaA        []model.VitalFewRecord
	Historico     []model.HistoricalRecord
	Feriados      map[string]struct{}
	Limiares      model.Thresholds
}

// Assemble builds the seven output tables. It owns final layout: it is the
// only place allowed to reorder or relabel anything for presentation, and
// every summary aggregate is recomputed from the category rows here so the
// KPI block can never drift from the emitted table.
func Assemble(in Inputs) model.Tables {
	diasOperacao := OperatingDays(in.VendasDiarias)

	curvaANomes := make(map[string]struct{}, len(in.CurvaA))
	for _, c := range in.CurvaA {
		curvaANomes[c.Produto] = struct{}{}
	}

	produtos := ProductMetrics(in.VendasDiarias, curvaANomes, diasOperacao, in.Limiares)
	yoy := CompareYoY(in.Historico, in.Categorias, in.Periodo)

	calendario := Calendar(in.Periodo.Ano, in.Feriados)
	calendario = append(calendario, Calendar(in.AnoAnterior, in.Feriados)...)
	sort.Slice(calendario, func(i, j int) bool { return calendario[i].Data < calendario[j].Data })

	return model.Tables{
		Resumo:         summarize(in, produtos),
		Categorias:     in.Categorias,
		TotalCategoria: in.Total,
		VendasDiarias:  in.VendasDiarias,
		Produtos:       produtos,
		Calendario:     calendario,
		ComparativoYoY: yoy,
		CurvaA:         in.CurvaA,
		AlertasErosao:  ErosionAlerts(in.CurvaA, in.Limiares),
	}
}

// ErosionAlerts filters Curva A rows to those with nonzero margin erosion
// and tags each against the alert band. The band is strict: erosion exactly
// at the threshold is still "Estável".
func ErosionAlerts(curvaA []model.VitalFewRecord, th model.Thresholds) []model.ErosionAlert {
	out := make([]model.ErosionAlert, 0)
	for _, c := range curvaA {
		if math.Abs(c.ErosaoMargem) == 0 {
			continue
		}
		alerta := model.AlertaEstavel
		switch {
		case c.ErosaoMargem > th.ErosaoPts:
			alerta = model.AlertaCustoSubiu
		case c.ErosaoMargem < -th.ErosaoPts:
			alerta = model.AlertaCustoCaiu
		}
		out = append(out, model.ErosionAlert{
			Produto:            c.Produto,
			Periodo:            c.Periodo.String(),
			Curva:              "A",
			VlrVenda:           c.VlrVenda,
			VlrLucro:           c.VlrLucro,
			MargemPct:          c.MargemPct,
			MarkdownPct:        c.MarkdownPct,
			MarkdownUltEntrada: c.MarkdownUltEntrada,
			ErosaoMargem:       c.ErosaoMargem,
			Alerta:             alerta,
		})
	}
	// worst erosion (cost drops are negative) first keeps the reds on top
	sort.Slice(out, func(i, j int) bool { return out[i].ErosaoMargem < out[j].ErosaoMargem })
	return out
}

func summarize(in Inputs, produtos []model.ProductMetric) model.Summary {
	var receita, lucro, cupons float64
	for _, c := range in.Categorias {
		receita += c.VlrVenda
		lucro += c.VlrLucro
		cupons += c.QtdeDocumentos
	}

	th := in.Limiares
	lucroLiquido := lucro - th.CustoFixo
	margemBruta := 0.0
	margemReal := 0.0
	if receita > 0 {
		margemBruta = lucro / receita * 100
		margemReal = lucroLiquido / receita * 100
	}
	pontoEquilibrio := 0.0
	if margemBruta > 0 {
		pontoEquilibrio = th.CustoFixo / (margemBruta / 100)
	}
	ticketMedio := 0.0
	if cupons > 0 {
		ticketMedio = receita / cupons
	}

	return model.Summary{
		Periodo:         in.Periodo.String(),
		Faturamento:     utils.Round2(receita),
		LucroBruto:      utils.Round2(lucro),
		LucroLiquido:    utils.Round2(lucroLiquido),
		MargemBruta:     utils.Round2(margemBruta),
		MargemReal:      utils.Round2(margemReal),
		PontoEquilibrio: utils.Round2(pontoEquilibrio),
		Cupons:          math.Round(cupons),
		TicketMedio:     utils.Round2(ticketMedio),
		CustoFixo:       th.CustoFixo,
		MetaLiquida:     th.MetaLiquida,
		SKUsAtivos:      len(produtos),
		ProdutosCurvaA:  len(in.CurvaA),
	}
}
