package export

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

func sampleTables() model.Tables {
	p := model.Period{Mes: 1, Ano: 2026}
	return model.Tables{
		Resumo: model.Summary{
			Periodo: "01/2026", Faturamento: 10000, LucroBruto: 3000,
			LucroLiquido: 2000, MargemBruta: 30, MargemReal: 20,
			PontoEquilibrio: 3333.33, Cupons: 100, TicketMedio: 100,
			CustoFixo: 1000, MetaLiquida: 0.15, SKUsAtivos: 2, ProdutosCurvaA: 1,
		},
		Categorias: []model.CategoryRecord{
			{Periodo: p, Categoria: "Bebidas", VlrVenda: 10000, VlrLucro: 3000},
		},
		VendasDiarias: []model.DailyProductRecord{
			{Data: "2026-01-05", Periodo: p, Produto: "Coca", Codigo: "778", VlrVenda: 50, VlrLucro: 20, MargemPct: 40},
		},
		Produtos: []model.ProductMetric{
			{Produto: "Coca", Curva: "A", Classificacao: model.ClasseEstrela,
				DiasVendidos: 1, DiasOperacao: 1, Giro: 1, ReceitaTotal: 50,
				LucroTotal: 20, MargemMedia: 40, GiroDiario: true},
		},
		Calendario: []model.CalendarDay{
			{Data: "2026-01-01", Dia: 1, DiaSemana: "Quinta", DiaSemanaNum: 4,
				SemanaMes: 1, Mes: 1, NomeMes: "Janeiro", Ano: 2026,
				Trimestre: "Q1", EUtil: true},
		},
		ComparativoYoY: []model.YoYRow{
			{Mes: "Janeiro", MesNum: 1, ReceitaPrev: 9000, ReceitaAtual: 10000, VarReceitaPct: 11.11},
		},
		CurvaA: []model.VitalFewRecord{
			{Periodo: p, Produto: "Coca", Codigo: "778", ErosaoMargem: 3.5},
		},
		AlertasErosao: []model.ErosionAlert{
			{Produto: "Coca", Periodo: "01/2026", Curva: "A", ErosaoMargem: 3.5, Alerta: model.AlertaCustoSubiu},
		},
	}
}

func TestWriteWorkbookSheetContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Base_PowerBI.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleTables(), 2026, 2025))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"resumo_executivo", "fato_vendas_mensais", "fato_vendas_diarias",
		"dim_produtos", "dim_calendario", "comparativo_yoy", "alertas_erosao_margem",
	}, f.GetSheetList())

	cat, err := f.GetCellValue("fato_vendas_mensais", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", cat)

	header, err := f.GetCellValue("comparativo_yoy", "H1")
	require.NoError(t, err)
	assert.Equal(t, "Receita_2026", header)

	giroDiario, err := f.GetCellValue("dim_produtos", "M2")
	require.NoError(t, err)
	assert.Equal(t, "Sim", giroDiario)

	titulo, err := f.GetCellValue("resumo_executivo", "A1")
	require.NoError(t, err)
	assert.Contains(t, titulo, "Resumo Executivo")
}

func TestWriteSQLiteMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dubairro.db")
	require.NoError(t, WriteSQLite(path, sampleTables(), 2026, 2025))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM fato_vendas_mensais`).Scan(&n))
	assert.Equal(t, 1, n)

	var classe string
	require.NoError(t, db.QueryRow(`SELECT classificacao FROM dim_produtos WHERE produto = 'Coca'`).Scan(&classe))
	assert.Equal(t, model.ClasseEstrela, classe)

	var faturamento float64
	require.NoError(t, db.QueryRow(`SELECT valor FROM resumo_executivo WHERE kpi = 'faturamento'`).Scan(&faturamento))
	assert.Equal(t, 10000.0, faturamento)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", formatBRL(1234.56))
	assert.Equal(t, "R$ 0,00", formatBRL(0))
	assert.Equal(t, "R$ -1.500,25", formatBRL(-1500.25))
	assert.Equal(t, "R$ 16.913,46", formatBRL(16913.46))
	assert.Equal(t, "R$ 1.000.000,00", formatBRL(1e6))
}
