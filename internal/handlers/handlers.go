package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rydeu/LinkShortener/internal/apperr"
	"github.com/rydeu/LinkShortener/internal/model"
	"github.com/rydeu/LinkShortener/internal/resolver"
	"github.com/rydeu/LinkShortener/internal/store"
)

// Pinger проверяет доступность внешнего бэкенда для /ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler объединяет зависимости HTTP-слоя.
type Handler struct {
	Store       *store.LinkStore
	Logger      *zap.Logger
	BaseURL     string
	BannerDelay time.Duration
	CachePing   Pinger
	DBPing      Pinger // nil в режиме без БД
}

// NewHandler создаёт обработчики. dbPing может быть nil.
func NewHandler(linkStore *store.LinkStore, logger *zap.Logger, baseURL string, bannerDelay time.Duration, cachePing Pinger, dbPing Pinger) *Handler {
	return &Handler{
		Store:       linkStore,
		Logger:      logger,
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		BannerDelay: bannerDelay,
		CachePing:   cachePing,
		DBPing:      dbPing,
	}
}

// CreateLink обрабатывает POST /api/shorten: создаёт короткую ссылку либо
// возвращает уже существующую для того же URL.
func (h *Handler) CreateLink(res http.ResponseWriter, req *http.Request) {
	var body model.CreateLinkRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.writeError(res, apperr.Validation("Invalid request body"))
		return
	}

	if strings.TrimSpace(body.LongURL) == "" {
		h.writeError(res, apperr.Validation("URL is required and must be a non-empty string"))
		return
	}

	userType := model.UserType(body.UserType)
	if !userType.Valid() {
		h.writeError(res, apperr.Validation("Invalid userType"))
		return
	}

	var bookingStartTime *time.Time
	if body.BookingStartTime != "" {
		t, err := time.Parse(time.RFC3339, body.BookingStartTime)
		if err != nil {
			h.writeError(res, apperr.Validation("Invalid booking start time format"))
			return
		}
		bookingStartTime = &t
	}

	link, err := h.Store.Create(req.Context(), body.LongURL, userType, bookingStartTime)
	if err != nil {
		h.writeError(res, err)
		return
	}

	ttl := h.Store.TTL()
	expiresAt := ttl.ExpiresAt(link)

	resp := model.CreateLinkResponse{
		ShortURL:  h.BaseURL + "/" + link.ShortID,
		DeepLink:  optional(link.DeepLink),
		IOSLink:   optional(link.IOSLink),
		ExpiresAt: expiresAt.Format(time.RFC3339),
		TTL: model.TTLInfo{
			Seconds:     ttl.SecondsUntil(expiresAt),
			Description: ttl.Description(link),
		},
	}
	if link.BookingStartTime != nil {
		s := link.BookingStartTime.Format(time.RFC3339)
		resp.BookingStartTime = &s
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(res).Encode(resp); err != nil {
		h.Logger.Error("failed to encode response", zap.Error(err))
	}
}

// Redirect обрабатывает GET /{id}: находит ссылку и по user-agent выбирает
// редирект на веб, передачу в приложение либо смарт-баннер.
func (h *Handler) Redirect(res http.ResponseWriter, req *http.Request) {
	shortID := chi.URLParam(req, "id")
	if strings.TrimSpace(shortID) == "" {
		h.writeError(res, apperr.Validation("Invalid shortId"))
		return
	}

	link, err := h.Store.FindByShortID(req.Context(), shortID)
	if err != nil {
		h.writeError(res, err)
		return
	}
	if link == nil {
		h.writeError(res, apperr.NotFound("Short link not found"))
		return
	}

	decision, err := resolver.Resolve(link, req.Header.Get("User-Agent"))
	if err != nil {
		h.writeError(res, err)
		return
	}

	switch decision.Kind {
	case resolver.KindSmartBanner:
		res.Header().Set("Content-Type", "text/html; charset=utf-8")
		res.WriteHeader(http.StatusOK)
		if err := resolver.RenderBanner(res, decision, h.BannerDelay); err != nil {
			h.Logger.Error("failed to render banner", zap.Error(err))
		}
	default:
		http.Redirect(res, req, decision.Target, http.StatusFound)
	}
}

// Ping проверяет доступность кэша и, если настроена, базы данных.
func (h *Handler) Ping(res http.ResponseWriter, req *http.Request) {
	if err := h.CachePing.Ping(req.Context()); err != nil {
		h.Logger.Error("cache ping failed", zap.Error(err))
		http.Error(res, "cache unavailable", http.StatusInternalServerError)
		return
	}
	if h.DBPing != nil {
		if err := h.DBPing.Ping(req.Context()); err != nil {
			h.Logger.Error("database ping failed", zap.Error(err))
			http.Error(res, "database unavailable", http.StatusInternalServerError)
			return
		}
	}
	res.WriteHeader(http.StatusOK)
}

// writeError отдаёт клиенту стабильный код ошибки; сырой текст ошибки
// бэкенда остаётся в логах.
func (h *Handler) writeError(res http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	if errors.Is(appErr, apperr.ErrStore) || errors.Is(appErr, apperr.ErrServer) {
		h.Logger.Error("request failed", zap.Error(err))
	} else {
		h.Logger.Warn("request rejected", zap.String("code", appErr.Code), zap.String("message", appErr.Message))
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(appErr.Status)
	_ = json.NewEncoder(res).Encode(appErr)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
