package export

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

// WriteSQLite mirrors the workbook tables into a SQLite database so the
// dashboard can query instead of re-reading xlsx. Tables are dropped and
// rebuilt on every run; there is no cross-run state.
func WriteSQLite(path string, t model.Tables, anoAtual, anoAnterior int) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ddl := []string{
		`DROP TABLE IF EXISTS fato_vendas_mensais`,
		`CREATE TABLE fato_vendas_mensais (
			periodo TEXT, mes INTEGER, ano INTEGER, categoria TEXT,
			qtde_venda REAL, qtde_documentos REAL, ticket_medio REAL,
			vlr_venda REAL, markdown_pct REAL, markdown_ult_entrada REAL,
			markup_pct REAL, markup_ult_entrada REAL, vlr_lucro REAL,
			custo_medio_liq REAL, custo_ult_entrada_liq REAL
		)`,
		`DROP TABLE IF EXISTS fato_vendas_diarias`,
		`CREATE TABLE fato_vendas_diarias (
			data TEXT, periodo TEXT, produto TEXT, codigo TEXT,
			qtde_venda REAL, qtde_documentos REAL, vlr_venda REAL,
			vlr_lucro REAL, margem_pct REAL, markdown_pct REAL,
			markdown_ult_entrada REAL, markup_pct REAL, markup_ult_entrada REAL,
			custo_medio_liq REAL, custo_ult_entrada_liq REAL
		)`,
		`DROP TABLE IF EXISTS dim_produtos`,
		`CREATE TABLE dim_produtos (
			produto TEXT, curva TEXT, classificacao TEXT,
			dias_vendidos INTEGER, dias_operacao INTEGER, giro REAL,
			receita_total REAL, lucro_total REAL, margem_media REAL,
			qtde_total REAL, cupons_total REAL, receita_media_dia REAL,
			giro_diario INTEGER
		)`,
		`DROP TABLE IF EXISTS dim_calendario`,
		`CREATE TABLE dim_calendario (
			data TEXT, dia INTEGER, dia_semana TEXT, dia_semana_num INTEGER,
			semana_mes INTEGER, mes INTEGER, nome_mes TEXT, ano INTEGER,
			trimestre TEXT, e_util INTEGER, e_domingo INTEGER, e_feriado INTEGER
		)`,
		`DROP TABLE IF EXISTS comparativo_yoy`,
		`CREATE TABLE comparativo_yoy (
			mes TEXT, mes_num INTEGER, ano_anterior INTEGER, ano_atual INTEGER,
			receita_anterior REAL, lucro_anterior REAL, margem_anterior REAL,
			cupons_anterior REAL, skus_anterior INTEGER,
			receita_atual REAL, lucro_atual REAL, margem_atual REAL,
			cupons_atual REAL, var_receita_pct REAL, var_lucro_pct REAL
		)`,
		`DROP TABLE IF EXISTS alertas_erosao_margem`,
		`CREATE TABLE alertas_erosao_margem (
			produto TEXT, periodo TEXT, curva TEXT, vlr_venda REAL,
			vlr_lucro REAL, margem_pct REAL, markdown_pct REAL,
			markdown_ult_entrada REAL, erosao_margem REAL, alerta TEXT
		)`,
		`DROP TABLE IF EXISTS resumo_executivo`,
		`CREATE TABLE resumo_executivo (kpi TEXT PRIMARY KEY, valor REAL)`,
	}
	for _, q := range ddl {
		if _, err = tx.Exec(q); err != nil {
			return fmt.Errorf("ddl: %w", err)
		}
	}

	for _, c := range t.Categorias {
		if _, err = tx.Exec(
			`INSERT INTO fato_vendas_mensais VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			c.Periodo.String(), c.Periodo.Mes, c.Periodo.Ano, c.Categoria,
			c.QtdeVenda, c.QtdeDocumentos, c.TicketMedio, c.VlrVenda,
			c.MarkdownPct, c.MarkdownUltEntrada, c.MarkupPct, c.MarkupUltEntrada,
			c.VlrLucro, c.CustoMedioLiq, c.CustoUltEntradaLiq); err != nil {
			return fmt.Errorf("fato_vendas_mensais: %w", err)
		}
	}
	for _, v := range t.VendasDiarias {
		if _, err = tx.Exec(
			`INSERT INTO fato_vendas_diarias VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			v.Data, v.Periodo.String(), v.Produto, v.Codigo,
			v.QtdeVenda, v.QtdeDocumentos, v.VlrVenda, v.VlrLucro, v.MargemPct,
			v.MarkdownPct, v.MarkdownUltEntrada, v.MarkupPct, v.MarkupUltEntrada,
			v.CustoMedioLiq, v.CustoUltEntradaLiq); err != nil {
			return fmt.Errorf("fato_vendas_diarias: %w", err)
		}
	}
	for _, p := range t.Produtos {
		if _, err = tx.Exec(
			`INSERT INTO dim_produtos VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			p.Produto, p.Curva, p.Classificacao, p.DiasVendidos, p.DiasOperacao,
			p.Giro, p.ReceitaTotal, p.LucroTotal, p.MargemMedia, p.QtdeTotal,
			p.CuponsTotal, p.ReceitaMediaDia, p.GiroDiario); err != nil {
			return fmt.Errorf("dim_produtos: %w", err)
		}
	}
	for _, d := range t.Calendario {
		if _, err = tx.Exec(
			`INSERT INTO dim_calendario VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			d.Data, d.Dia, d.DiaSemana, d.DiaSemanaNum, d.SemanaMes, d.Mes,
			d.NomeMes, d.Ano, d.Trimestre, d.EUtil, d.EDomingo, d.EFeriado); err != nil {
			return fmt.Errorf("dim_calendario: %w", err)
		}
	}
	for _, y := range t.ComparativoYoY {
		if _, err = tx.Exec(
			`INSERT INTO comparativo_yoy VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			y.Mes, y.MesNum, anoAnterior, anoAtual,
			y.ReceitaPrev, y.LucroPrev, y.MargemPrev, y.CuponsPrev, y.SKUsPrev,
			y.ReceitaAtual, y.LucroAtual, y.MargemAtual, y.CuponsAtual,
			y.VarReceitaPct, y.VarLucroPct); err != nil {
			return fmt.Errorf("comparativo_yoy: %w", err)
		}
	}
	for _, a := range t.AlertasErosao {
		if _, err = tx.Exec(
			`INSERT INTO alertas_erosao_margem VALUES (?,?,?,?,?,?,?,?,?,?)`,
			a.Produto, a.Periodo, a.Curva, a.VlrVenda, a.VlrLucro, a.MargemPct,
			a.MarkdownPct, a.MarkdownUltEntrada, a.ErosaoMargem, a.Alerta); err != nil {
			return fmt.Errorf("alertas_erosao_margem: %w", err)
		}
	}

	r := t.Resumo
	for _, kv := range []struct {
		k string
		v float64
	}{
		{"faturamento", r.Faturamento},
		{"lucro_bruto", r.LucroBruto},
		{"lucro_liquido", r.LucroLiquido},
		{"margem_bruta", r.MargemBruta},
		{"margem_real", r.MargemReal},
		{"ponto_equilibrio", r.PontoEquilibrio},
		{"cupons", r.Cupons},
		{"ticket_medio", r.TicketMedio},
		{"custo_fixo", r.CustoFixo},
		{"skus_ativos", float64(r.SKUsAtivos)},
		{"produtos_curva_a", float64(r.ProdutosCurvaA)},
	} {
		if _, err = tx.Exec(`INSERT INTO resumo_executivo VALUES (?,?)`, kv.k, kv.v); err != nil {
			return fmt.Errorf("resumo_executivo: %w", err)
		}
	}

	return tx.Commit()
}
