package resolver

import (
	"regexp"

	"github.com/rydeu/LinkShortener/internal/apperr"
	"github.com/rydeu/LinkShortener/internal/model"
)

// Kind — вид решения о редиректе.
type Kind int

const (
	// KindRedirect — обычный HTTP-редирект на Target.
	KindRedirect Kind = iota
	// KindSmartBanner — промежуточная HTML-страница: попытка открыть
	// приложение по AppLink с таймерным откатом на WebURL.
	KindSmartBanner
)

// Decision — результат разбора ссылки и user-agent. Чистые данные:
// в HTTP-ответ их превращает обработчик.
type Decision struct {
	Kind     Kind
	Target   string         // цель редиректа при KindRedirect
	AppLink  string         // ссылка приложения при KindSmartBanner
	WebURL   string         // веб-откат при KindSmartBanner
	UserType model.UserType // для текста баннера
}

var (
	androidRe = regexp.MustCompile(`(?i)android`)
	iosRe     = regexp.MustCompile(`(?i)iphone|ipad|ipod`)
	// Встроенный браузер наших мобильных приложений опознаётся по токену в UA.
	inAppRe = regexp.MustCompile(`(?i)RydeuApp|RydeuSupplier`)
)

// Resolve выбирает цель редиректа для ссылки и user-agent вызывающего.
// Ветви проверяются по порядку, срабатывает первая подходящая.
func Resolve(link *model.Link, userAgent string) (*Decision, error) {
	if link.LongURL == "" {
		return nil, apperr.Server("Missing required link data", nil)
	}

	if link.DeepLink == "" {
		return &Decision{Kind: KindRedirect, Target: link.LongURL}, nil
	}

	if inAppRe.MatchString(userAgent) {
		// Запрос уже из нашего приложения: передаём управление напрямую,
		// без промежуточной страницы.
		return &Decision{Kind: KindRedirect, Target: link.DeepLink}, nil
	}

	isIOS := iosRe.MatchString(userAgent)
	if isIOS || androidRe.MatchString(userAgent) {
		appLink := link.DeepLink
		if isIOS && link.IOSLink != "" {
			appLink = link.IOSLink
		}
		// Мобильный браузер не умеет синхронно узнать, перехватил ли
		// custom-scheme переход установленное приложение, поэтому
		// единственный надёжный способ — страница с таймерным откатом.
		return &Decision{
			Kind:     KindSmartBanner,
			AppLink:  appLink,
			WebURL:   link.LongURL,
			UserType: link.UserType,
		}, nil
	}

	return &Decision{Kind: KindRedirect, Target: link.LongURL}, nil
}
