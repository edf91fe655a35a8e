package resolver

import (
	"html/template"
	"io"
	"time"

	"github.com/rydeu/LinkShortener/internal/model"
)

// DefaultBannerDelay — пауза перед откатом на веб-URL, если приложение
// не перехватило переход.
const DefaultBannerDelay = 1500 * time.Millisecond

// Структура и текст страницы повторяют прежнее поведение продукта:
// мгновенная попытка открыть приложение, затем таймерный переход на веб.
var bannerTmpl = template.Must(template.New("banner").Parse(`<html>
<head>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <script>
    window.location.href = {{.AppLink}};
    setTimeout(function() {
      window.location.href = {{.WebURL}};
    }, {{.DelayMS}});
  </script>
</head>
<body>
  <h3>Opening Rydeu{{if .Supplier}} Supplier{{end}}...</h3>
  <p>If the app doesn't open automatically, please wait or use the link below.</p>
  <a href="{{.WebURL}}">Continue in browser</a>
</body>
</html>
`))

type bannerData struct {
	AppLink  string
	WebURL   string
	DelayMS  int64
	Supplier bool
}

// RenderBanner пишет HTML смарт-баннера для решения KindSmartBanner.
func RenderBanner(w io.Writer, d *Decision, delay time.Duration) error {
	if delay <= 0 {
		delay = DefaultBannerDelay
	}
	return bannerTmpl.Execute(w, bannerData{
		AppLink:  d.AppLink,
		WebURL:   d.WebURL,
		DelayMS:  delay.Milliseconds(),
		Supplier: d.UserType == model.UserTypeSupplier,
	})
}
