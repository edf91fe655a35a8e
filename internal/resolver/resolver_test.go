package resolver

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rydeu/LinkShortener/internal/apperr"
	"github.com/rydeu/LinkShortener/internal/model"
)

const (
	uaAndroid  = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36"
	uaIPhone   = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile Safari/604.1"
	uaDesktop  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36"
	uaInApp    = "Mozilla/5.0 (Linux; Android 14) RydeuApp/3.2.1"
	uaSupplier = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) RydeuSupplier/1.4.0"
)

func customerLink() *model.Link {
	return &model.Link{
		ShortID:  "abc12345",
		LongURL:  "https://example.com/x",
		UserType: model.UserTypeCustomer,
		DeepLink: "rydeu://app/x",
		IOSLink:  "rydeu://app/x",
	}
}

func TestResolve_MissingLongURL(t *testing.T) {
	_, err := Resolve(&model.Link{ShortID: "abc12345"}, uaDesktop)
	assert.ErrorIs(t, err, apperr.ErrServer)
}

// Ссылка без deep-линка ведёт на веб независимо от устройства
func TestResolve_NoDeepLink(t *testing.T) {
	link := &model.Link{
		ShortID:  "abc12345",
		LongURL:  "https://example.com/x",
		UserType: model.UserTypeOrganization,
	}

	for _, ua := range []string{uaAndroid, uaIPhone, uaDesktop, ""} {
		d, err := Resolve(link, ua)
		assert.NoError(t, err)
		assert.Equal(t, KindRedirect, d.Kind)
		assert.Equal(t, "https://example.com/x", d.Target)
	}
}

// Запрос из собственного приложения: редирект сразу в deep-линк, без баннера
func TestResolve_InAppBrowser(t *testing.T) {
	for _, ua := range []string{uaInApp, uaSupplier} {
		d, err := Resolve(customerLink(), ua)
		assert.NoError(t, err)
		assert.Equal(t, KindRedirect, d.Kind)
		assert.Equal(t, "rydeu://app/x", d.Target)
	}
}

// Мобильный браузер получает смарт-баннер с откатом на веб
func TestResolve_MobileBrowser(t *testing.T) {
	d, err := Resolve(customerLink(), uaAndroid)
	assert.NoError(t, err)
	assert.Equal(t, KindSmartBanner, d.Kind)
	assert.Equal(t, "rydeu://app/x", d.AppLink)
	assert.Equal(t, "https://example.com/x", d.WebURL)
}

func TestResolve_IOSPrefersIOSLink(t *testing.T) {
	link := customerLink()
	link.IOSLink = "rydeu://app/ios/x"

	d, err := Resolve(link, uaIPhone)
	assert.NoError(t, err)
	assert.Equal(t, KindSmartBanner, d.Kind)
	assert.Equal(t, "rydeu://app/ios/x", d.AppLink)

	// Android при этом получает обычный deep-линк.
	d, err = Resolve(link, uaAndroid)
	assert.NoError(t, err)
	assert.Equal(t, "rydeu://app/x", d.AppLink)
}

func TestResolve_Desktop(t *testing.T) {
	d, err := Resolve(customerLink(), uaDesktop)
	assert.NoError(t, err)
	assert.Equal(t, KindRedirect, d.Kind)
	assert.Equal(t, "https://example.com/x", d.Target)
}

func TestRenderBanner(t *testing.T) {
	d, err := Resolve(customerLink(), uaAndroid)
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = RenderBanner(&buf, d, 1500*time.Millisecond)
	assert.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "rydeu://app/x")
	assert.Contains(t, html, "https://example.com/x")
	assert.Contains(t, html, "1500")
	assert.Contains(t, html, "Opening Rydeu")
	if strings.Contains(html, "Opening Rydeu Supplier") {
		t.Error("customer banner must not mention supplier")
	}
}

func TestRenderBanner_Supplier(t *testing.T) {
	link := customerLink()
	link.UserType = model.UserTypeSupplier
	link.DeepLink = "rydeu-supplier://app/x"
	link.IOSLink = "rydeu-supplier://app/x"

	d, err := Resolve(link, uaIPhone)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, RenderBanner(&buf, d, 0))
	assert.Contains(t, buf.String(), "Opening Rydeu Supplier")
}

func BenchmarkResolve(b *testing.B) {
	link := customerLink()
	for i := 0; i < b.N; i++ {
		if _, err := Resolve(link, uaAndroid); err != nil {
			b.Fatal(err)
		}
	}
}
