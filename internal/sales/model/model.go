package model

import "fmt"

// Period is the month under analysis. String() renders the MM/YYYY key the
// dashboard joins on.
type Period struct {
	Mes int
	Ano int
}

func (p Period) String() string { return fmt.Sprintf("%02d/%d", p.Mes, p.Ano) }

// CategoryRecord is one category row of the monthly category export. The
// "Total" row of the sheet is captured separately and never mixed in.
// VlrLucro comes from the sheet and is the authoritative profit figure —
// downstream aggregation must not re-derive it.
type CategoryRecord struct {
	Periodo   Period
	Categoria string

	QtdeVenda      float64
	QtdeDocumentos float64
	VlrAcrescimos  float64
	VlrDescontos   float64
	TicketMedio    float64
	VlrVenda       float64
	PartVenda      float64

	MarkdownPct        float64
	MarkdownUltEntrada float64
	MarkupPct          float64
	MarkupUltEntrada   float64

	VlrLucro           float64
	PartLucro          float64
	CustoMedioLiq      float64
	CustoUltEntradaLiq float64
}

// DailyProductRecord is one (date, product) observation from the
// product-per-day export. Data is ISO yyyy-mm-dd once the date header
// parsed; otherwise the header text is carried verbatim.
type DailyProductRecord struct {
	Data    string
	Periodo Period

	Produto string
	Codigo  string
	IDERP   string

	QtdeVenda      float64
	QtdeDocumentos float64
	VlrAcrescimos  float64
	VlrDescontos   float64
	TicketMedio    float64
	VlrVenda       float64
	PartVenda      float64

	MarkdownPct        float64
	MarkdownUltEntrada float64
	MarkupPct          float64
	MarkupUltEntrada   float64

	VlrLucro           float64
	PartLucro          float64
	CustoMedioLiq      float64
	CustoUltEntradaLiq float64

	MargemPct float64 // 100·lucro/venda, 0 when venda is 0
}

// VitalFewRecord is one Curva A product for the month. ErosaoMargem is the
// markdown delta against the last replenishment entry: positive means the
// restock cost rose and the shelf price has not caught up.
type VitalFewRecord struct {
	Periodo Period
	Produto string
	Codigo  string

	QtdeVenda      float64
	QtdeDocumentos float64
	VlrVenda       float64

	MarkdownPct        float64
	MarkdownUltEntrada float64
	MarkupPct          float64
	MarkupUltEntrada   float64

	VlrLucro           float64
	CustoMedioLiq      float64
	CustoUltEntradaLiq float64

	MargemPct    float64
	ErosaoMargem float64
}

// HistoricalRecord is one (month, product) row of the prior-year export.
type HistoricalRecord struct {
	Mes     int
	Ano     int
	NomeMes string
	Produto string

	QtdeVenda      float64
	QtdeDocumentos float64
	VlrVenda       float64
	VlrLucro       float64
	MargemPct      float64
	MarkdownPct    float64
}

// ProductMetric is the derived per-product row of dim_produtos: turnover,
// totals and the 2×2 matrix class. Computed once per run, immutable after.
type ProductMetric struct {
	Produto string
	Curva   string // "A" or "B/C"

	DiasVendidos int
	DiasOperacao int
	Giro         float64

	ReceitaTotal float64
	LucroTotal   float64
	MargemMedia  float64
	QtdeTotal    float64
	CuponsTotal  float64

	Classificacao   string
	ReceitaMediaDia float64
	GiroDiario      bool
}

// Matrix class labels. These values are part of the workbook contract the
// dashboard filters on.
const (
	ClasseEstrela      = "Estrela"
	ClasseGeradorCaixa = "Gerador de Caixa"
	ClasseOportunidade = "Oportunidade"
	ClassePesoMorto    = "Peso Morto"
)

// YoYRow is one of the 12 fixed rows of comparativo_yoy. Zero-filled
// current-year fields and zero variances mean "no data yet", not zero
// change — the variance guard only fires when the prior denominator is > 0.
type YoYRow struct {
	Mes    string
	MesNum int

	ReceitaPrev float64
	LucroPrev   float64
	MargemPrev  float64
	CuponsPrev  float64
	SKUsPrev    int

	ReceitaAtual float64
	LucroAtual   float64
	MargemAtual  float64
	CuponsAtual  float64

	VarReceitaPct float64
	VarLucroPct   float64
}

// CalendarDay is one row of dim_calendario.
type CalendarDay struct {
	Data         string
	Dia          int
	DiaSemana    string
	DiaSemanaNum int // 1=Monday .. 7=Sunday
	SemanaMes    int
	Mes          int
	NomeMes      string
	Ano          int
	Trimestre    string
	EUtil        bool
	EDomingo     bool
	EFeriado     bool
}

// ErosionAlert is the alert view over Curva A rows with nonzero erosion.
type ErosionAlert struct {
	Produto            string
	Periodo            string
	Curva              string
	VlrVenda           float64
	VlrLucro           float64
	MargemPct          float64
	MarkdownPct        float64
	MarkdownUltEntrada float64
	ErosaoMargem       float64
	Alerta             string
}

// Alert labels (workbook contract).
const (
	AlertaCustoSubiu = "Custo Subiu"
	AlertaCustoCaiu  = "Custo Caiu"
	AlertaEstavel    = "Estável"
)

// Thresholds carries every tunable of the engine so components stay free of
// hidden globals and tests can probe the boundaries.
type Thresholds struct {
	GiroAlto    float64 // turnover cut of the 2×2 matrix
	MargemAlta  float64 // mean-margin cut of the 2×2 matrix, percent
	GiroDiario  float64 // stricter cut flagging stock-out candidates
	ErosaoPts   float64 // margin-erosion alert band, percentage points
	CustoFixo   float64 // monthly fixed operating cost
	MetaLiquida float64 // net-margin target, ratio
}

// DefaultThresholds are the store's production values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GiroAlto:    0.6,
		MargemAlta:  50,
		GiroDiario:  0.7,
		ErosaoPts:   3,
		CustoFixo:   16913.46,
		MetaLiquida: 0.15,
	}
}

// Summary is the resumo_executivo KPI block, always recomputed from the
// category rows at assembly time.
type Summary struct {
	Periodo         string
	Faturamento     float64
	LucroBruto      float64
	LucroLiquido    float64
	MargemBruta     float64
	MargemReal      float64
	PontoEquilibrio float64
	Cupons          float64
	TicketMedio     float64
	CustoFixo       float64
	MetaLiquida     float64
	SKUsAtivos      int
	ProdutosCurvaA  int
}

// Tables is the full normalized output of one run.
type Tables struct {
	Resumo         Summary
	Categorias     []CategoryRecord
	TotalCategoria *CategoryRecord
	VendasDiarias  []DailyProductRecord
	Produtos       []ProductMetric
	Calendario     []CalendarDay
	ComparativoYoY []YoYRow
	CurvaA         []VitalFewRecord
	AlertasErosao  []ErosionAlert
}

// RunReport is what a successful run answers with: per-table row counts so
// silent data loss (zero categories parsed, say) is observable, plus the
// skip counters from each extractor.
type RunReport struct {
	Periodo        string         `json:"periodo"`
	DiasOperacao   int            `json:"dias_operacao"`
	Linhas         map[string]int `json:"linhas"`
	LinhasPuladas  map[string]int `json:"linhas_puladas"`
	Classificacoes map[string]int `json:"classificacoes"`
	Arquivo        string         `json:"arquivo"`
}
