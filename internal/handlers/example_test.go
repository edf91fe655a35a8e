package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/rydeu/LinkShortener/internal/cache"
	"github.com/rydeu/LinkShortener/internal/handlers"
	"github.com/rydeu/LinkShortener/internal/policy"
	"github.com/rydeu/LinkShortener/internal/store"
)

// ExampleHandler_CreateLink демонстрирует создание короткой ссылки.
func ExampleHandler_CreateLink() {
	mr, _ := miniredis.Run()
	defer mr.Close()

	c, _ := cache.NewRedis(context.Background(), mr.Addr(), "", 0)
	defer c.Close()

	logger := zap.NewNop()
	linkStore := store.NewLinkStore(c, nil, policy.NewTTL(0, 0, 0), logger)
	h := handlers.NewHandler(linkStore, logger, "http://localhost", 1500*time.Millisecond, c, nil)

	body := `{"longURL":"https://example.com/a/b","userType":"customer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.CreateLink(rec, req)
	resp := rec.Result()
	defer resp.Body.Close()

	var result map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&result)

	fmt.Println(resp.StatusCode)
	fmt.Println(strings.HasPrefix(result["shortURL"].(string), "http://localhost/"))
	fmt.Println(result["deepLink"])

	// Output:
	// 200
	// true
	// rydeu://app/a/b
}
