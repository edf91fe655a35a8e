package policy

import (
	"time"

	"github.com/rydeu/LinkShortener/internal/model"
)

// Значения по умолчанию; реальные берутся из конфигурации.
const (
	DefaultBookingOffset = 30 * 24 * time.Hour      // 30 дней после начала бронирования
	DefaultLinkLifetime  = 9 * 30 * 24 * time.Hour  // 9 месяцев с момента создания
	DefaultTTLFloor      = time.Hour                // нижняя граница TTL записи в кэше
)

// TTL вычисляет момент истечения ссылки и оставшийся срок жизни в секундах.
// Обе записи кэша (shortId:* и link:*) обязаны получать TTL только отсюда,
// иначе половинки пары могут разойтись по времени жизни.
type TTL struct {
	BookingOffset time.Duration
	LinkLifetime  time.Duration
	Floor         time.Duration

	now func() time.Time // подменяется в тестах
}

// NewTTL создает политику с заданными значениями; нулевые заменяются умолчаниями.
func NewTTL(bookingOffset, linkLifetime, floor time.Duration) *TTL {
	if bookingOffset <= 0 {
		bookingOffset = DefaultBookingOffset
	}
	if linkLifetime <= 0 {
		linkLifetime = DefaultLinkLifetime
	}
	if floor <= 0 {
		floor = DefaultTTLFloor
	}
	return &TTL{
		BookingOffset: bookingOffset,
		LinkLifetime:  linkLifetime,
		Floor:         floor,
		now:           time.Now,
	}
}

// ExpiresAt возвращает момент истечения ссылки как чистую функцию ее полей.
// Ветка выбирается по наличию BookingStartTime.
func (t *TTL) ExpiresAt(link *model.Link) time.Time {
	if link.BookingStartTime != nil {
		return link.BookingStartTime.Add(t.BookingOffset)
	}
	return link.CreatedAt.Add(t.LinkLifetime)
}

// SecondsUntil возвращает число секунд до expiresAt, но не меньше Floor.
// Граница нужна, чтобы запись, прошедшая валидацию на грани истечения,
// не исчезла из кэша раньше, чем ее успеют прочитать.
func (t *TTL) SecondsUntil(expiresAt time.Time) int {
	secs := int(expiresAt.Sub(t.now()).Seconds())
	floor := int(t.Floor.Seconds())
	if secs < floor {
		return floor
	}
	return secs
}

// Expired сообщает, истекла ли ссылка на текущий момент.
func (t *TTL) Expired(link *model.Link) bool {
	return t.now().After(t.ExpiresAt(link))
}

// Description возвращает текстовое описание срока жизни для ответа API.
func (t *TTL) Description(link *model.Link) string {
	if link.BookingStartTime != nil {
		return "30 days after booking start"
	}
	return "9 months from creation"
}
