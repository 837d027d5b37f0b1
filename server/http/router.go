package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/thiagusantos-jpg/dubairro/internal/config"
	"github.com/thiagusantos-jpg/dubairro/internal/middleware"
	salesHnd "github.com/thiagusantos-jpg/dubairro/internal/sales/handler"
	"github.com/thiagusantos-jpg/dubairro/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// one full ETL run per request
	r.Post("/process", salesHnd.Process(cfg, logger))

	return r
}
