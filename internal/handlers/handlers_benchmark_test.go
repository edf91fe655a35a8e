package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/rydeu/LinkShortener/internal/cache"
	"github.com/rydeu/LinkShortener/internal/handlers"
	"github.com/rydeu/LinkShortener/internal/model"
	"github.com/rydeu/LinkShortener/internal/policy"
	"github.com/rydeu/LinkShortener/internal/router"
	"github.com/rydeu/LinkShortener/internal/store"
)

func setupBenchServer(b *testing.B) (http.Handler, string) {
	b.Helper()
	mr := miniredis.RunT(b)
	c, err := cache.NewRedis(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { c.Close() })

	linkStore := store.NewLinkStore(c, nil, policy.NewTTL(0, 0, 0), zap.NewNop())
	link, err := linkStore.Create(context.Background(), "https://example.com/bench", model.UserTypeCustomer, nil)
	if err != nil {
		b.Fatal(err)
	}

	h := handlers.NewHandler(linkStore, zap.NewNop(), "http://localhost:8080", 1500*time.Millisecond, c, nil)
	return router.NewRouter(h, zap.NewNop()), link.ShortID
}

func BenchmarkRedirect(b *testing.B) {
	srv, shortID := setupBenchServer(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/"+shortID, nil)
		req.Header.Set("User-Agent", uaDesktop)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		if w.Code != http.StatusFound {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

func BenchmarkCreateLink(b *testing.B) {
	srv, _ := setupBenchServer(b)
	body := `{"longURL":"https://example.com/bench","userType":"customer"}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
