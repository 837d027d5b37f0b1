package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

func venda(data, produto string, receita, lucro float64) model.DailyProductRecord {
	return model.DailyProductRecord{
		Data:           data,
		Produto:        produto,
		VlrVenda:       receita,
		VlrLucro:       lucro,
		QtdeVenda:      1,
		QtdeDocumentos: 1,
	}
}

func TestClassifyMatrix(t *testing.T) {
	th := model.DefaultThresholds()
	cases := []struct {
		giro   float64
		margem float64
		want   string
	}{
		{0.8, 60, model.ClasseEstrela},
		{0.8, 30, model.ClasseGeradorCaixa},
		{0.3, 60, model.ClasseOportunidade},
		{0.3, 30, model.ClassePesoMorto},
		// both cuts are strict: landing exactly on a threshold is "no"
		{0.6, 60, model.ClasseOportunidade},
		{0.8, 50, model.ClasseGeradorCaixa},
		{0.6, 50, model.ClassePesoMorto},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.giro, tc.margem, th), "giro=%v margem=%v", tc.giro, tc.margem)
	}
}

func TestProductMetricsAggregation(t *testing.T) {
	vendas := []model.DailyProductRecord{
		venda("2026-01-05", "Coca", 100, 60),
		venda("2026-01-06", "Coca", 100, 60),
		venda("2026-01-07", "Coca", 100, 60),
		venda("2026-01-05", "Vela", 10, 8),
	}
	curvaA := map[string]struct{}{"Coca": {}}

	metrics := ProductMetrics(vendas, curvaA, 4, model.DefaultThresholds())
	require.Len(t, metrics, 2)

	// sorted by descending revenue
	coca := metrics[0]
	assert.Equal(t, "Coca", coca.Produto)
	assert.Equal(t, "A", coca.Curva)
	assert.Equal(t, 3, coca.DiasVendidos)
	assert.Equal(t, 4, coca.DiasOperacao)
	assert.Equal(t, 0.75, coca.Giro)
	assert.Equal(t, 300.0, coca.ReceitaTotal)
	assert.Equal(t, 180.0, coca.LucroTotal)
	assert.Equal(t, 60.0, coca.MargemMedia)
	assert.Equal(t, 100.0, coca.ReceitaMediaDia)
	assert.Equal(t, model.ClasseEstrela, coca.Classificacao)
	assert.True(t, coca.GiroDiario)

	vela := metrics[1]
	assert.Equal(t, "B/C", vela.Curva)
	assert.Equal(t, 0.25, vela.Giro)
	assert.Equal(t, 80.0, vela.MargemMedia)
	assert.Equal(t, model.ClasseOportunidade, vela.Classificacao)
	assert.False(t, vela.GiroDiario)
}

func TestProductMetricsZeroRevenueDaysExcludedFromMargin(t *testing.T) {
	vendas := []model.DailyProductRecord{
		venda("2026-01-05", "Gelo", 100, 50),
		venda("2026-01-06", "Gelo", 0, -5), // returns-only day
	}
	metrics := ProductMetrics(vendas, nil, 2, model.DefaultThresholds())
	require.Len(t, metrics, 1)
	assert.Equal(t, 50.0, metrics[0].MargemMedia)
	assert.Equal(t, 2, metrics[0].DiasVendidos)
	assert.Equal(t, 45.0, metrics[0].LucroTotal)
}

func TestProductMetricsZeroOperatingDays(t *testing.T) {
	metrics := ProductMetrics([]model.DailyProductRecord{venda("x", "P", 10, 5)}, nil, 0, model.DefaultThresholds())
	require.Len(t, metrics, 1)
	assert.Equal(t, 0.0, metrics[0].Giro)
}

func TestProductMetricsNoPositiveRevenue(t *testing.T) {
	metrics := ProductMetrics([]model.DailyProductRecord{venda("x", "P", 0, 0)}, nil, 1, model.DefaultThresholds())
	require.Len(t, metrics, 1)
	assert.Equal(t, 0.0, metrics[0].MargemMedia)
	assert.Equal(t, model.ClassePesoMorto, metrics[0].Classificacao)
}

func TestOperatingDays(t *testing.T) {
	vendas := []model.DailyProductRecord{
		venda("2026-01-05", "A", 1, 0),
		venda("2026-01-05", "B", 1, 0),
		venda("2026-01-06", "A", 1, 0),
	}
	assert.Equal(t, 2, OperatingDays(vendas))
	assert.Equal(t, 0, OperatingDays(nil))
}
