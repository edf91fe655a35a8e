package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс key-value кэша, который использует хранилище
// ссылок и сборщик просроченных записей. Любой метод может вернуть ошибку
// бэкенда; как с ней поступать — решает вызывающий слой.
type Cache interface {
	// Get возвращает значение по ключу. Отсутствие ключа — (nil, nil), не ошибка.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set записывает значение с TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del удаляет ключи; удаление отсутствующего ключа — no-op.
	Del(ctx context.Context, keys ...string) error
	// Keys возвращает ключи по шаблону (используется только сборщиком).
	Keys(ctx context.Context, pattern string) ([]string, error)
}
