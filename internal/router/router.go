package router

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rydeu/LinkShortener/internal/handlers"
	"github.com/rydeu/LinkShortener/internal/middleware"
)

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(middleware.GzipMiddleware)            // Gzip-сжатие

	r.Post("/api/shorten", handler.CreateLink)
	r.Get("/ping", handler.Ping)
	r.Get("/{id}", handler.Redirect)
	return r
}
