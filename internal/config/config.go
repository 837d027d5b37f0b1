package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

// national holidays for the 2026 analysis year; override with HOLIDAYS
var feriadosPadrao = []string{
	"2026-01-01", // Ano Novo
	"2026-02-16", // Carnaval
	"2026-02-17", // Carnaval
	"2026-04-03", // Sexta-feira Santa
	"2026-04-21", // Tiradentes
	"2026-05-01", // Dia do Trabalho
	"2026-06-04", // Corpus Christi
	"2026-09-07", // Independência
	"2026-10-12", // N.S. Aparecida
	"2026-11-02", // Finados
	"2026-11-15", // Proclamação da República
	"2026-12-25", // Natal
}

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	OutputDir  string
	SQLitePath string // empty disables the SQLite mirror

	AnoAnalise  int
	AnoAnterior int
	Feriados    map[string]struct{}
	Limiares    model.Thresholds
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8084"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")

	anoAnalise, _ := strconv.Atoi(getenv("ANO_ANALISE", "2026"))
	anoAnterior, _ := strconv.Atoi(getenv("ANO_ANTERIOR", "2025"))

	th := model.DefaultThresholds()
	th.GiroAlto = getfloat("LIMIAR_GIRO_ALTO", th.GiroAlto)
	th.MargemAlta = getfloat("LIMIAR_MARGEM_ALTA", th.MargemAlta)
	th.GiroDiario = getfloat("LIMIAR_GIRO_DIARIO", th.GiroDiario)
	th.ErosaoPts = getfloat("LIMIAR_EROSAO", th.ErosaoPts)
	th.CustoFixo = getfloat("CUSTO_FIXO", th.CustoFixo)
	th.MetaLiquida = getfloat("META_LIQUIDA", th.MetaLiquida)

	feriados := feriadosPadrao
	if v := os.Getenv("HOLIDAYS"); v != "" {
		feriados = strings.Split(v, ",")
	}
	feriadoSet := make(map[string]struct{}, len(feriados))
	for _, f := range feriados {
		if f = strings.TrimSpace(f); f != "" {
			feriadoSet[f] = struct{}{}
		}
	}

	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/dubairro-etl.log"),
		MaxUploadMB:  mb,
		OutputDir:    getenv("OUTPUT_DIR", "saida"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
		AnoAnalise:   anoAnalise,
		AnoAnterior:  anoAnterior,
		Feriados:     feriadoSet,
		Limiares:     th,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
