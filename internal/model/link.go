package model

import (
	"strings"
	"time"
)

// UserType определяет тип пользователя, для которого создана ссылка.
type UserType string

const (
	UserTypeNone         UserType = ""
	UserTypeCustomer     UserType = "customer"
	UserTypeSupplier     UserType = "supplier"
	UserTypeOrganization UserType = "organization"
)

// Valid проверяет, что тип пользователя известен системе.
func (u UserType) Valid() bool {
	switch u {
	case UserTypeNone, UserTypeCustomer, UserTypeSupplier, UserTypeOrganization:
		return true
	}
	return false
}

// HasDeepLink сообщает, генерируются ли для данного типа deep-ссылки.
func (u UserType) HasDeepLink() bool {
	return u == UserTypeCustomer || u == UserTypeSupplier
}

// Link представляет сохранённое сопоставление короткого идентификатора и
// оригинального URL. Запись неизменяема после создания; удаление — единственная
// допустимая мутация.
type Link struct {
	ShortID          string     `json:"shortId"`
	LongURL          string     `json:"longURL"`
	UserType         UserType   `json:"userType"`
	BookingStartTime *time.Time `json:"bookingStartTime,omitempty"`
	DeepLink         string     `json:"deepLink,omitempty"`
	IOSLink          string     `json:"iosLink,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// DeriveDeepLinks возвращает deep-ссылку и iOS-ссылку для заданного URL и типа
// пользователя. Для типов без мобильного приложения обе строки пустые.
// Путь берётся после третьего сегмента "/" оригинального URL:
// https://example.com/a/b -> rydeu://app/a/b
func DeriveDeepLinks(longURL string, userType UserType) (deepLink, iosLink string) {
	if !userType.HasDeepLink() {
		return "", ""
	}

	parts := strings.Split(longURL, "/")
	var path string
	if len(parts) > 3 {
		path = strings.Join(parts[3:], "/")
	}

	scheme := "rydeu"
	if userType == UserTypeSupplier {
		scheme = "rydeu-supplier"
	}
	link := scheme + "://app/" + path
	return link, link
}
