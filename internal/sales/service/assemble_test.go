package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

func curvaARecord(produto string, erosao float64) model.VitalFewRecord {
	return model.VitalFewRecord{
		Periodo:      model.Period{Mes: 1, Ano: 2026},
		Produto:      produto,
		VlrVenda:     100,
		VlrLucro:     40,
		ErosaoMargem: erosao,
	}
}

func TestErosionAlertsBandIsStrict(t *testing.T) {
	th := model.DefaultThresholds()
	curva := []model.VitalFewRecord{
		curvaARecord("na banda", 3.0),    // exactly at the threshold
		curvaARecord("subiu", 3.01),      // just past it
		curvaARecord("caiu", -3.5),
		curvaARecord("leve", -1.2),
		curvaARecord("sem erosão", 0), // filtered out entirely
	}

	alertas := ErosionAlerts(curva, th)
	require.Len(t, alertas, 4)

	byProduto := make(map[string]model.ErosionAlert, len(alertas))
	for _, a := range alertas {
		byProduto[a.Produto] = a
	}
	assert.Equal(t, model.AlertaEstavel, byProduto["na banda"].Alerta)
	assert.Equal(t, model.AlertaCustoSubiu, byProduto["subiu"].Alerta)
	assert.Equal(t, model.AlertaCustoCaiu, byProduto["caiu"].Alerta)
	assert.Equal(t, model.AlertaEstavel, byProduto["leve"].Alerta)

	// sorted ascending so the worst cost drops lead
	assert.Equal(t, "caiu", alertas[0].Produto)
	assert.Equal(t, "subiu", alertas[len(alertas)-1].Produto)
}

func TestAssembleSummaryRecomputedFromCategories(t *testing.T) {
	th := model.DefaultThresholds()
	th.CustoFixo = 1000

	in := Inputs{
		Periodo:     model.Period{Mes: 1, Ano: 2026},
		AnoAnterior: 2025,
		Categorias: []model.CategoryRecord{
			{Categoria: "Bebidas", VlrVenda: 6000, VlrLucro: 1800, QtdeDocumentos: 60},
			{Categoria: "Padaria", VlrVenda: 4000, VlrLucro: 1200, QtdeDocumentos: 40},
		},
		VendasDiarias: []model.DailyProductRecord{
			{Data: "2026-01-05", Produto: "Coca", VlrVenda: 50, VlrLucro: 20},
			{Data: "2026-01-06", Produto: "Pão", VlrVenda: 30, VlrLucro: 15},
		},
		CurvaA:   []model.VitalFewRecord{curvaARecord("Coca", 1)},
		Limiares: th,
	}

	tables := Assemble(in)

	r := tables.Resumo
	assert.Equal(t, 10000.0, r.Faturamento)
	assert.Equal(t, 3000.0, r.LucroBruto)
	assert.Equal(t, 2000.0, r.LucroLiquido)
	assert.Equal(t, 30.0, r.MargemBruta)
	assert.Equal(t, 20.0, r.MargemReal)
	assert.Equal(t, 3333.33, r.PontoEquilibrio) // fixed cost / gross margin
	assert.Equal(t, 100.0, r.Cupons)
	assert.Equal(t, 100.0, r.TicketMedio)
	assert.Equal(t, 2, r.SKUsAtivos)
	assert.Equal(t, 1, r.ProdutosCurvaA)
}

func TestAssembleTableShape(t *testing.T) {
	in := Inputs{
		Periodo:     model.Period{Mes: 1, Ano: 2026},
		AnoAnterior: 2025,
		Categorias: []model.CategoryRecord{
			{Categoria: "Bebidas", VlrVenda: 10000, VlrLucro: 3000},
		},
		Historico: []model.HistoricalRecord{
			{Mes: 1, Ano: 2025, Produto: "Arroz", VlrVenda: 9000, VlrLucro: 2500},
		},
		VendasDiarias: []model.DailyProductRecord{
			{Data: "2026-01-05", Produto: "Coca", VlrVenda: 50, VlrLucro: 20},
		},
		Limiares: model.DefaultThresholds(),
	}

	tables := Assemble(in)

	require.Len(t, tables.ComparativoYoY, 12)
	jan := tables.ComparativoYoY[0]
	assert.Equal(t, 10000.0, jan.ReceitaAtual)
	assert.Equal(t, 11.11, jan.VarReceitaPct)
	assert.Equal(t, 20.0, jan.VarLucroPct)

	// calendar covers the analysis year and the prior year, sorted
	assert.Len(t, tables.Calendario, 730)
	assert.Equal(t, "2025-01-01", tables.Calendario[0].Data)
	assert.Equal(t, "2026-12-31", tables.Calendario[len(tables.Calendario)-1].Data)

	require.Len(t, tables.Produtos, 1)
	assert.Equal(t, "Coca", tables.Produtos[0].Produto)
	assert.Equal(t, 1, tables.Produtos[0].DiasOperacao)
}
