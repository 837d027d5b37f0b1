// Package export writes the assembled tables to their consumers: the
// Base_PowerBI.xlsx workbook and, optionally, a SQLite mirror. Sheet names,
// column names and label values are a stable contract with the dashboard —
// renaming any of them is a breaking change.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

type styleSet struct {
	header  int
	data    int
	dataAlt int
	classes map[string]int
	alertas map[string]int
	titulo  int
	legenda int
}

func buildStyles(f *excelize.File) (styleSet, error) {
	var st styleSet
	var err error

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "DDDDDD"},
		{Type: "right", Style: 1, Color: "DDDDDD"},
		{Type: "top", Style: 1, Color: "DDDDDD"},
		{Type: "bottom", Style: 1, Color: "DDDDDD"},
	}

	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Bold: true, Size: 10, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2D2D2D"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return st, err
	}
	st.data, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Family: "Arial", Size: 10},
		Border: border,
	})
	if err != nil {
		return st, err
	}
	st.dataAlt, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Family: "Arial", Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F5F5F5"}},
		Border: border,
	})
	if err != nil {
		return st, err
	}
	st.titulo, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Bold: true, Size: 16, Color: "2D2D2D"},
	})
	if err != nil {
		return st, err
	}
	st.legenda, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Size: 12, Color: "666666"},
	})
	if err != nil {
		return st, err
	}

	tinted := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:   &excelize.Font{Family: "Arial", Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Border: border,
		})
	}
	st.classes = make(map[string]int, 4)
	st.alertas = make(map[string]int, 2)
	for label, color := range map[string]string{
		model.ClasseEstrela:      "D5F5E3",
		model.ClasseGeradorCaixa: "FFF9C4",
		model.ClasseOportunidade: "DCEEFB",
		model.ClassePesoMorto:    "FADBD8",
	} {
		if st.classes[label], err = tinted(color); err != nil {
			return st, err
		}
	}
	for label, color := range map[string]string{
		model.AlertaCustoSubiu: "FADBD8",
		model.AlertaCustoCaiu:  "D5F5E3",
	} {
		if st.alertas[label], err = tinted(color); err != nil {
			return st, err
		}
	}
	return st, nil
}

// writeTable writes headers plus rows starting at A1 and applies the header
// style, alternating row fills and auto column widths.
func writeTable(f *excelize.File, sheet string, st styleSet, headers []string, rows [][]any) error {
	widths := make([]int, len(headers))
	put := func(col, row int, v any) error {
		cellName, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellName, v); err != nil {
			return err
		}
		if n := len(fmt.Sprint(v)); col-1 < len(widths) && n > widths[col-1] {
			widths[col-1] = n
		}
		return nil
	}

	for c, h := range headers {
		if err := put(c+1, 1, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			if err := put(c+1, r+2, v); err != nil {
				return err
			}
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, st.header); err != nil {
		return err
	}
	for r := range rows {
		style := st.data
		if r%2 == 0 {
			style = st.dataAlt
		}
		from, _ := excelize.CoordinatesToCellName(1, r+2)
		to, _ := excelize.CoordinatesToCellName(len(headers), r+2)
		if err := f.SetCellStyle(sheet, from, to, style); err != nil {
			return err
		}
	}

	for c := range headers {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		w := float64(widths[c] + 3)
		if w > 40 {
			w = 40
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// formatBRL renders "R$ 1.234,56".
func formatBRL(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "R$ -" + b.String() + "," + frac
	}
	return out
}

// WriteWorkbook writes the full seven-sheet workbook to path.
func WriteWorkbook(path string, t model.Tables, anoAtual, anoAnterior int) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := buildStyles(f)
	if err != nil {
		return fmt.Errorf("workbook styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", "resumo_executivo"); err != nil {
		return err
	}
	if err := writeResumo(f, st, t.Resumo); err != nil {
		return fmt.Errorf("resumo_executivo: %w", err)
	}

	sheets := []struct {
		name  string
		write func(*excelize.File, styleSet) error
	}{
		{"fato_vendas_mensais", func(f *excelize.File, st styleSet) error { return writeCategorias(f, st, t.Categorias) }},
		{"fato_vendas_diarias", func(f *excelize.File, st styleSet) error { return writeVendasDiarias(f, st, t.VendasDiarias) }},
		{"dim_produtos", func(f *excelize.File, st styleSet) error { return writeProdutos(f, st, t.Produtos) }},
		{"dim_calendario", func(f *excelize.File, st styleSet) error { return writeCalendario(f, st, t.Calendario) }},
		{"comparativo_yoy", func(f *excelize.File, st styleSet) error { return writeYoY(f, st, t.ComparativoYoY, anoAtual, anoAnterior) }},
		{"alertas_erosao_margem", func(f *excelize.File, st styleSet) error { return writeAlertas(f, st, t.AlertasErosao) }},
	}
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return err
		}
		if err := s.write(f, st); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return f.SaveAs(path)
}

func writeCategorias(f *excelize.File, st styleSet, cats []model.CategoryRecord) error {
	headers := []string{"Periodo", "Mes", "Ano", "Categoria", "Qtde_Venda", "Qtde_Documentos",
		"Ticket_Medio", "Vlr_Venda", "Markdown_Pct", "Markdown_Ult_Entrada",
		"Markup_Pct", "Markup_Ult_Entrada", "Vlr_Lucro", "Custo_Medio_Liq",
		"Custo_Ult_Entrada_Liq"}
	rows := make([][]any, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []any{c.Periodo.String(), c.Periodo.Mes, c.Periodo.Ano, c.Categoria,
			c.QtdeVenda, c.QtdeDocumentos, c.TicketMedio, c.VlrVenda,
			c.MarkdownPct, c.MarkdownUltEntrada, c.MarkupPct, c.MarkupUltEntrada,
			c.VlrLucro, c.CustoMedioLiq, c.CustoUltEntradaLiq})
	}
	return writeTable(f, "fato_vendas_mensais", st, headers, rows)
}

func writeVendasDiarias(f *excelize.File, st styleSet, vendas []model.DailyProductRecord) error {
	headers := []string{"Data", "Periodo", "Produto", "Codigo", "Qtde_Venda", "Qtde_Documentos",
		"Vlr_Venda", "Vlr_Lucro", "Margem_Pct", "Markdown_Pct",
		"Markdown_Ult_Entrada", "Markup_Pct", "Markup_Ult_Entrada",
		"Custo_Medio_Liq", "Custo_Ult_Entrada_Liq"}
	rows := make([][]any, 0, len(vendas))
	for _, v := range vendas {
		rows = append(rows, []any{v.Data, v.Periodo.String(), v.Produto, v.Codigo,
			v.QtdeVenda, v.QtdeDocumentos, v.VlrVenda, v.VlrLucro, v.MargemPct,
			v.MarkdownPct, v.MarkdownUltEntrada, v.MarkupPct, v.MarkupUltEntrada,
			v.CustoMedioLiq, v.CustoUltEntradaLiq})
	}
	return writeTable(f, "fato_vendas_diarias", st, headers, rows)
}

func writeProdutos(f *excelize.File, st styleSet, produtos []model.ProductMetric) error {
	headers := []string{"Produto", "Curva", "Classificacao", "Dias_Vendidos", "Dias_Operacao",
		"Giro", "Receita_Total", "Lucro_Total", "Margem_Media", "Qtde_Total",
		"Cupons_Total", "Receita_Media_Dia", "Giro_Diario"}
	rows := make([][]any, 0, len(produtos))
	for _, p := range produtos {
		rows = append(rows, []any{p.Produto, p.Curva, p.Classificacao, p.DiasVendidos,
			p.DiasOperacao, p.Giro, p.ReceitaTotal, p.LucroTotal, p.MargemMedia,
			p.QtdeTotal, p.CuponsTotal, p.ReceitaMediaDia, simNao(p.GiroDiario)})
	}
	if err := writeTable(f, "dim_produtos", st, headers, rows); err != nil {
		return err
	}
	// tint the class column
	for i, p := range produtos {
		if style, ok := st.classes[p.Classificacao]; ok {
			cell, _ := excelize.CoordinatesToCellName(3, i+2)
			if err := f.SetCellStyle("dim_produtos", cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCalendario(f *excelize.File, st styleSet, dias []model.CalendarDay) error {
	headers := []string{"Data", "Dia", "Dia_Semana", "Dia_Semana_Num", "Semana_Mes",
		"Mes", "Nome_Mes", "Ano", "Trimestre", "E_Util", "E_Domingo", "E_Feriado"}
	rows := make([][]any, 0, len(dias))
	for _, d := range dias {
		rows = append(rows, []any{d.Data, d.Dia, d.DiaSemana, d.DiaSemanaNum, d.SemanaMes,
			d.Mes, d.NomeMes, d.Ano, d.Trimestre,
			simNao(d.EUtil), simNao(d.EDomingo), simNao(d.EFeriado)})
	}
	return writeTable(f, "dim_calendario", st, headers, rows)
}

func writeYoY(f *excelize.File, st styleSet, yoy []model.YoYRow, anoAtual, anoAnterior int) error {
	headers := []string{"Mes", "Mes_Num",
		fmt.Sprintf("Receita_%d", anoAnterior), fmt.Sprintf("Lucro_%d", anoAnterior),
		fmt.Sprintf("Margem_%d", anoAnterior), fmt.Sprintf("Cupons_%d", anoAnterior),
		fmt.Sprintf("SKUs_%d", anoAnterior),
		fmt.Sprintf("Receita_%d", anoAtual), fmt.Sprintf("Lucro_%d", anoAtual),
		fmt.Sprintf("Margem_%d", anoAtual), fmt.Sprintf("Cupons_%d", anoAtual),
		"Var_Receita_Pct", "Var_Lucro_Pct"}
	rows := make([][]any, 0, len(yoy))
	for _, y := range yoy {
		rows = append(rows, []any{y.Mes, y.MesNum,
			y.ReceitaPrev, y.LucroPrev, y.MargemPrev, y.CuponsPrev, y.SKUsPrev,
			y.ReceitaAtual, y.LucroAtual, y.MargemAtual, y.CuponsAtual,
			y.VarReceitaPct, y.VarLucroPct})
	}
	return writeTable(f, "comparativo_yoy", st, headers, rows)
}

func writeAlertas(f *excelize.File, st styleSet, alertas []model.ErosionAlert) error {
	headers := []string{"Produto", "Periodo", "Curva", "Vlr_Venda", "Vlr_Lucro", "Margem_Pct",
		"Markdown_Pct", "Markdown_Ult_Entrada", "Erosao_Margem", "Alerta"}
	rows := make([][]any, 0, len(alertas))
	for _, a := range alertas {
		rows = append(rows, []any{a.Produto, a.Periodo, a.Curva, a.VlrVenda, a.VlrLucro,
			a.MargemPct, a.MarkdownPct, a.MarkdownUltEntrada, a.ErosaoMargem, a.Alerta})
	}
	if err := writeTable(f, "alertas_erosao_margem", st, headers, rows); err != nil {
		return err
	}
	for i, a := range alertas {
		if style, ok := st.alertas[a.Alerta]; ok {
			cell, _ := excelize.CoordinatesToCellName(10, i+2)
			if err := f.SetCellStyle("alertas_erosao_margem", cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeResumo(f *excelize.File, st styleSet, r model.Summary) error {
	const sheet = "resumo_executivo"

	for col, w := range map[string]float64{"A": 35, "B": 25, "C": 25, "D": 20} {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	if err := f.SetCellValue(sheet, "A1", "MERCADO duBAIRRO — Resumo Executivo"); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", st.titulo)
	if err := f.SetCellValue(sheet, "A2", "Painel dos Sócios — "+r.Periodo); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A2", "A2", st.legenda)

	metaLucro := r.Faturamento * r.MetaLiquida
	statusLucro := "⚠️ Abaixo"
	if r.LucroLiquido > metaLucro {
		statusLucro = "✅ Acima"
	}
	statusMargem := "🔴 Atenção"
	if r.MargemReal > r.MetaLiquida*100 {
		statusMargem = "✅ Saudável"
	}
	folga := ""
	if r.PontoEquilibrio > 0 {
		folga = fmt.Sprintf("Folga: %.0f%%", (r.Faturamento/r.PontoEquilibrio-1)*100)
	}

	kpis := [][]any{
		{"KPI", "Valor", "Meta / Referência", "Status"},
		{"Faturamento", formatBRL(r.Faturamento), "", ""},
		{"Lucro Bruto", formatBRL(r.LucroBruto), "", ""},
		{"Lucro Líquido (- Custo Fixo)", formatBRL(r.LucroLiquido), "Meta: " + formatBRL(metaLucro), statusLucro},
		{"Margem Bruta", fmt.Sprintf("%.1f%%", r.MargemBruta), "", ""},
		{"Margem Real", fmt.Sprintf("%.1f%%", r.MargemReal), fmt.Sprintf("Meta: %.0f%%", r.MetaLiquida*100), statusMargem},
		{"Ponto de Equilíbrio", formatBRL(r.PontoEquilibrio), folga, ""},
		{"Nº de Cupons", fmt.Sprintf("%.0f", r.Cupons), "", ""},
		{"Ticket Médio", formatBRL(r.TicketMedio), "", ""},
		{"Custo Fixo Mensal", formatBRL(r.CustoFixo), "", ""},
		{"Produtos Ativos (SKUs)", strconv.Itoa(r.SKUsAtivos), "", ""},
		{"Produtos Curva A", strconv.Itoa(r.ProdutosCurvaA), "", ""},
	}

	for i, row := range kpis {
		rowNum := i + 5
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			style := st.data
			if i == 0 {
				style = st.header
			} else if rowNum%2 == 0 {
				style = st.dataAlt
			}
			_ = f.SetCellStyle(sheet, cell, cell, style)
		}
	}
	return nil
}
