package handler

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/thiagusantos-jpg/dubairro/internal/config"
	"github.com/thiagusantos-jpg/dubairro/internal/sales/export"
	"github.com/thiagusantos-jpg/dubairro/internal/sales/extract"
	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
	"github.com/thiagusantos-jpg/dubairro/internal/sales/service"
)

// Process returns the POST /process handler: multipart upload of the
// monthly exports, one full ETL run, workbook (+ optional SQLite) written,
// JSON run report back.
//
// Required parts: "categoria", "produtopordia", "curvaA" (one or more files
// each, month/year detected from the file name). Optional: "historico",
// the fixed prior-year export. A missing required part aborts the run — a
// partially populated workbook would be indistinguishable from a complete
// one downstream.
func Process(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			log = logger.With().Str("req_id", rid).Logger()
		}

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		mf := r.MultipartForm

		for _, part := range []string{"categoria", "produtopordia", "curvaA"} {
			if len(mf.File[part]) == 0 {
				http.Error(w, "missing required part: "+part, http.StatusBadRequest)
				return
			}
		}

		var (
			periodo    model.Period
			temPeriodo bool

			categorias []model.CategoryRecord
			total      *model.CategoryRecord
			vendas     []model.DailyProductRecord
			curvaA     []model.VitalFewRecord
			historico  []model.HistoricalRecord

			puladas = map[string]int{}
		)

		// each file is extracted in isolation and merged only when done, so
		// one file's row grammar never interleaves with another's
		for _, fh := range mf.File["categoria"] {
			p, grid, err := readDatedPart(fh)
			if err != nil {
				http.Error(w, "categoria: "+err.Error(), http.StatusBadRequest)
				return
			}
			res := extract.Categories(grid, p)
			categorias = append(categorias, res.Categorias...)
			if res.Total != nil {
				total = res.Total
			}
			puladas["fato_vendas_mensais"] += res.Puladas
			if !temPeriodo {
				periodo, temPeriodo = p, true
			}
			log.Info().Str("arquivo", fh.Filename).Str("periodo", p.String()).
				Int("categorias", len(res.Categorias)).Int("puladas", res.Puladas).Msg("categorias extraídas")
		}

		for _, fh := range mf.File["produtopordia"] {
			p, grid, err := readDatedPart(fh)
			if err != nil {
				http.Error(w, "produtopordia: "+err.Error(), http.StatusBadRequest)
				return
			}
			res := extract.DailyProducts(grid, p)
			vendas = append(vendas, res.Vendas...)
			puladas["fato_vendas_diarias"] += res.Puladas
			log.Info().Str("arquivo", fh.Filename).Str("periodo", p.String()).
				Int("vendas", len(res.Vendas)).Int("puladas", res.Puladas).Msg("vendas diárias extraídas")
		}

		for _, fh := range mf.File["curvaA"] {
			p, grid, err := readDatedPart(fh)
			if err != nil {
				http.Error(w, "curvaA: "+err.Error(), http.StatusBadRequest)
				return
			}
			res := extract.VitalFew(grid, p)
			curvaA = append(curvaA, res.Produtos...)
			puladas["curva_a"] += res.Puladas
			log.Info().Str("arquivo", fh.Filename).Str("periodo", p.String()).
				Int("produtos", len(res.Produtos)).Int("puladas", res.Puladas).Msg("curva A extraída")
		}

		for _, fh := range mf.File["historico"] {
			grid, err := readGrid(fh)
			if err != nil {
				http.Error(w, "historico: "+err.Error(), http.StatusBadRequest)
				return
			}
			res := extract.History(grid, cfg.AnoAnterior)
			historico = append(historico, res.Registros...)
			puladas["historico"] += res.Puladas
			log.Info().Str("arquivo", fh.Filename).
				Int("registros", len(res.Registros)).Int("anomalias", res.Anomalias).
				Int("puladas", res.Puladas).Msg("histórico extraído")
		}

		tables := service.Assemble(service.Inputs{
			Periodo:       periodo,
			AnoAnterior:   cfg.AnoAnterior,
			Categorias:    categorias,
			Total:         total,
			VendasDiarias: vendas,
			CurvaA:        curvaA,
			Historico:     historico,
			Feriados:      cfg.Feriados,
			Limiares:      cfg.Limiares,
		})

		outPath := filepath.Join(cfg.OutputDir, "Base_PowerBI.xlsx")
		if err := export.WriteWorkbook(outPath, tables, periodo.Ano, cfg.AnoAnterior); err != nil {
			log.Error().Err(err).Msg("workbook write failed")
			http.Error(w, "failed to write workbook", http.StatusInternalServerError)
			return
		}
		if cfg.SQLitePath != "" {
			if err := export.WriteSQLite(cfg.SQLitePath, tables, periodo.Ano, cfg.AnoAnterior); err != nil {
				log.Error().Err(err).Msg("sqlite mirror write failed")
				http.Error(w, "failed to write sqlite mirror", http.StatusInternalServerError)
				return
			}
		}

		classes := map[string]int{}
		for _, p := range tables.Produtos {
			classes[p.Classificacao]++
		}

		report := model.RunReport{
			Periodo:      periodo.String(),
			DiasOperacao: service.OperatingDays(vendas),
			Linhas: map[string]int{
				"fato_vendas_mensais":   len(tables.Categorias),
				"fato_vendas_diarias":   len(tables.VendasDiarias),
				"dim_produtos":          len(tables.Produtos),
				"dim_calendario":        len(tables.Calendario),
				"comparativo_yoy":       len(tables.ComparativoYoY),
				"alertas_erosao_margem": len(tables.AlertasErosao),
			},
			LinhasPuladas:  puladas,
			Classificacoes: classes,
			Arquivo:        outPath,
		}

		log.Info().Str("periodo", report.Periodo).Int("dias_operacao", report.DiasOperacao).
			Interface("linhas", report.Linhas).Dur("dur", time.Since(start)).Msg("processamento concluído")
		writeJSON(w, http.StatusOK, report)
	}
}

// readDatedPart reads an uploaded sheet whose file name must carry the
// month/year tag.
func readDatedPart(fh *multipart.FileHeader) (model.Period, [][]string, error) {
	mes, ano, ok := extract.DetectPeriod(fh.Filename)
	if !ok {
		return model.Period{}, nil, errNoPeriod(fh.Filename)
	}
	grid, err := readGrid(fh)
	if err != nil {
		return model.Period{}, nil, err
	}
	return model.Period{Mes: mes, Ano: ano}, grid, nil
}
