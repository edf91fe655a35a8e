package model

// CreateLinkRequest представляет структуру запроса на создание короткой ссылки.
type CreateLinkRequest struct {
	LongURL          string `json:"longURL"`
	UserType         string `json:"userType"`
	BookingStartTime string `json:"bookingStartTime,omitempty"`
}

// TTLInfo описывает срок жизни созданной ссылки в ответе API.
type TTLInfo struct {
	Seconds     int    `json:"seconds"`
	Description string `json:"description"`
}

// CreateLinkResponse представляет структуру ответа с короткой ссылкой.
type CreateLinkResponse struct {
	ShortURL         string  `json:"shortURL"`
	DeepLink         *string `json:"deepLink"`
	IOSLink          *string `json:"iosLink"`
	BookingStartTime *string `json:"bookingStartTime,omitempty"`
	ExpiresAt        string  `json:"expiresAt"`
	TTL              TTLInfo `json:"ttl"`
}
