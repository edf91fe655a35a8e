package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rydeu/LinkShortener/internal/cache"
	"github.com/rydeu/LinkShortener/internal/policy"
	"github.com/rydeu/LinkShortener/internal/store"
)

// DefaultInterval — период между проходами сборщика.
const DefaultInterval = 6 * time.Hour

// Sweeper периодически перечисляет записи shortId:* и удаляет просроченные
// по обоим ключам. Кэш и так выставляет TTL при записи; сборщик — защита от
// записей с неверным TTL и от накопления устаревших строк в БД.
type Sweeper struct {
	cache    cache.Cache
	links    *store.LinkStore
	ttl      *policy.TTL
	interval time.Duration
	logger   *zap.Logger
}

// New создаёт сборщик; нулевой интервал заменяется умолчанием.
func New(c cache.Cache, links *store.LinkStore, ttl *policy.TTL, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{cache: c, links: links, ttl: ttl, interval: interval, logger: logger}
}

// Run запускает цикл: один проход сразу, далее по таймеру до отмены контекста.
// Блокирует вызывающую горутину.
func (s *Sweeper) Run(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Сборщик остановлен")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep выполняет один проход и возвращает число проверенных и удалённых
// записей. Ошибки отдельных ключей не прерывают проход.
func (s *Sweeper) Sweep(ctx context.Context) (checked, deleted int) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("sweep", runID))

	keys, err := s.cache.Keys(ctx, store.KeyPattern)
	if err != nil {
		log.Error("failed to list cache keys", zap.Error(err))
		return 0, 0
	}

	for _, key := range keys {
		data, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Error("failed to read key", zap.String("key", key), zap.Error(err))
			continue
		}
		if data == nil {
			continue // ключ истёк между SCAN и GET
		}

		link, err := store.Decode(data)
		if err != nil {
			log.Error("failed to decode record", zap.String("key", key), zap.Error(err))
			continue
		}
		checked++

		if !s.ttl.Expired(link) {
			continue
		}
		if err := s.links.Remove(ctx, link); err != nil {
			log.Error("failed to delete expired link", zap.String("shortId", link.ShortID), zap.Error(err))
			continue
		}
		deleted++
	}

	log.Info("Проход сборщика завершён",
		zap.Int("checked", checked),
		zap.Int("deleted", deleted),
	)
	return checked, deleted
}
