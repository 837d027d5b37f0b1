package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"github.com/thiagusantos-jpg/dubairro/internal/config"
	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

func sheetBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func pad(row []any, width int) []any {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		MaxUploadMB: 32,
		OutputDir:   t.TempDir(),
		AnoAnalise:  2026,
		AnoAnterior: 2025,
		Feriados:    map[string]struct{}{},
		Limiares:    model.DefaultThresholds(),
	}
}

func addFile(t *testing.T, mw *multipart.Writer, field, name string, content []byte) {
	t.Helper()
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
}

func TestProcessEndToEnd(t *testing.T) {
	categoria := sheetBytes(t, [][]any{
		{"Análise de Vendas por Categoria"},
		pad([]any{"Categoria"}, 16),
		pad([]any{"Bebidas", "100", "150", "", "", "", "10.000,00", "", "30,00", "", "", "", "3.000,00"}, 16),
		pad([]any{"Total", "100", "150", "", "", "", "10.000,00", "", "30,00", "", "", "", "3.000,00"}, 16),
	})
	produtopordia := sheetBytes(t, [][]any{
		{"Análise de Vendas por Produto/Dia"},
		pad([]any{"Data"}, 17),
		pad([]any{"5/1/2026"}, 17),
		pad([]any{"", "Coca-Cola 2L||778||12", "2", "2", "", "", "", "21,00", "", "", "", "", "", "7,00"}, 17),
		pad([]any{"", "Total"}, 17),
	})
	curvaA := sheetBytes(t, [][]any{
		{"Curva A"},
		pad([]any{"Produto"}, 16),
		pad([]any{"Coca-Cola 2L||778", "2", "2", "", "", "", "21,00", "", "40,00", "35,00", "", "", "7,00"}, 16),
	})
	historico := sheetBytes(t, [][]any{
		{"Mês a Mês"},
		pad([]any{"Mês"}, 14),
		pad([]any{"Janeiro"}, 14),
		pad([]any{"", "Arroz 5kg||200", "10", "8", "", "", "", "9.000,00", "", "", "", "", "", "2.500,00"}, 14),
	})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	addFile(t, mw, "categoria", "categoria_analisedevendas_jan2026.xlsx", categoria)
	addFile(t, mw, "produtopordia", "produtopordia_analisedevendas_jan2026.xlsx", produtopordia)
	addFile(t, mw, "curvaA", "curvaA_analisedevendas_jan2026.xlsx", curvaA)
	addFile(t, mw, "historico", "mesamesproduto2025_analisedevendas.xlsx", historico)
	require.NoError(t, mw.Close())

	cfg := testConfig(t)
	req := httptest.NewRequest("POST", "/process", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	Process(cfg, zerolog.Nop())(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var report model.RunReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))

	assert.Equal(t, "01/2026", report.Periodo)
	assert.Equal(t, 1, report.DiasOperacao)
	assert.Equal(t, 1, report.Linhas["fato_vendas_mensais"])
	assert.Equal(t, 1, report.Linhas["fato_vendas_diarias"])
	assert.Equal(t, 1, report.Linhas["dim_produtos"])
	assert.Equal(t, 12, report.Linhas["comparativo_yoy"])
	assert.Equal(t, 1, report.Linhas["alertas_erosao_margem"])

	// the workbook landed where the dashboard expects it
	outPath := filepath.Join(cfg.OutputDir, "Base_PowerBI.xlsx")
	assert.Equal(t, outPath, report.Arquivo)
	_, err := os.Stat(outPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	// YoY contract: Receita_2026=10000 against Receita_2025=9000
	receita, err := f.GetCellValue("comparativo_yoy", "H2")
	require.NoError(t, err)
	assert.Equal(t, "10000", receita)
	varReceita, err := f.GetCellValue("comparativo_yoy", "L2")
	require.NoError(t, err)
	assert.Equal(t, "11.11", varReceita)
	varLucro, err := f.GetCellValue("comparativo_yoy", "M2")
	require.NoError(t, err)
	assert.Equal(t, "20", varLucro)
}

func TestProcessMissingRequiredPart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	addFile(t, mw, "categoria", "categoria_analisedevendas_jan2026.xlsx", sheetBytes(t, [][]any{{"x"}}))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/process", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	Process(testConfig(t), zerolog.Nop())(rec, req)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "produtopordia")
}

func TestProcessRejectsFileWithoutPeriodTag(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	sheet := sheetBytes(t, [][]any{{"x"}})
	addFile(t, mw, "categoria", "categoria_sem_tag.xlsx", sheet)
	addFile(t, mw, "produtopordia", "produtopordia_analisedevendas_jan2026.xlsx", sheet)
	addFile(t, mw, "curvaA", "curvaA_analisedevendas_jan2026.xlsx", sheet)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/process", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	Process(testConfig(t), zerolog.Nop())(rec, req)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "no month/year tag")
}
