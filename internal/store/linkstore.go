package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/rydeu/LinkShortener/internal/apperr"
	"github.com/rydeu/LinkShortener/internal/cache"
	"github.com/rydeu/LinkShortener/internal/model"
	"github.com/rydeu/LinkShortener/internal/policy"
	"github.com/rydeu/LinkShortener/internal/repositories"
	"github.com/rydeu/LinkShortener/internal/util"
)

// Префиксы ключей кэша. Каждая ссылка хранится под двумя ключами
// с одинаковым TTL; содержимое пары обязано совпадать, пока оба живы.
const (
	ShortIDKeyPrefix = "shortId:"
	LongURLKeyPrefix = "link:"
)

// KeyPattern — шаблон перечисления записей для сборщика.
const KeyPattern = ShortIDKeyPrefix + "*"

// LinkStore — cache-aside хранилище ссылок: быстрый кэш как источник истины,
// опциональная БД как fallback на промахах и ошибках кэша.
type LinkStore struct {
	cache  cache.Cache
	repo   repositories.LinkRepositoryInterface // nil в режиме без БД
	ttl    *policy.TTL
	logger *zap.Logger

	now func() time.Time // подменяется в тестах
}

// NewLinkStore создаёт хранилище. repo может быть nil — тогда промах кэша
// означает отсутствие ссылки.
func NewLinkStore(c cache.Cache, repo repositories.LinkRepositoryInterface, ttl *policy.TTL, logger *zap.Logger) *LinkStore {
	return &LinkStore{
		cache:  c,
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// TTL отдаёт политику сроков жизни для формирования ответа API.
func (s *LinkStore) TTL() *policy.TTL { return s.ttl }

// Create создаёт ссылку либо возвращает уже существующую активную для того же
// longURL (идемпотентность: не более одной активной ссылки на URL).
//
// Два конкурентных Create для одного URL могут оба пройти проверку
// существования и оба записать пару ключей. Это осознанно допущенная гонка:
// побеждает последняя запись link:{url}, осиротевший shortId остаётся
// рабочим до своего истечения. Поток создания ссылок мал, а повторные
// запросы идемпотентны, поэтому гонка стоит лишь немного лишней памяти.
func (s *LinkStore) Create(ctx context.Context, longURL string, userType model.UserType, bookingStartTime *time.Time) (*model.Link, error) {
	parsed, err := url.ParseRequestURI(longURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, apperr.Validation("Invalid URL format")
	}
	if !userType.Valid() {
		return nil, apperr.Validation("Invalid userType")
	}

	now := s.now()
	if bookingStartTime != nil && bookingStartTime.Before(now) {
		return nil, apperr.Validation(fmt.Sprintf(
			"Cannot create link - Booking start time (%s) is in the past", bookingStartTime.Format(time.RFC3339)))
	}

	link := &model.Link{
		LongURL:          longURL,
		UserType:         userType,
		BookingStartTime: bookingStartTime,
		CreatedAt:        now,
	}
	expiresAt := s.ttl.ExpiresAt(link)
	if !expiresAt.After(now) {
		return nil, apperr.Validation("Cannot create link - Expiration time would be in the past")
	}

	if existing, err := s.FindByLongURL(ctx, longURL); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	shortID, err := util.NewShortID()
	if err != nil {
		return nil, apperr.Server("Failed to generate short id", err)
	}
	link.ShortID = shortID
	link.DeepLink, link.IOSLink = model.DeriveDeepLinks(longURL, userType)

	if err := s.writePair(ctx, link, expiresAt); err != nil {
		// Неполная пара хуже отсутствия записи: вызывающий не должен
		// считать ссылку созданной, если кэш её не принял.
		return nil, apperr.Store("Failed to create link", err)
	}

	if s.repo != nil {
		if err := s.repo.SaveLink(ctx, link); err != nil {
			// БД — вторичное хранилище; пара ключей уже записана,
			// поэтому создание не откатываем.
			s.logger.Error("durable store write failed", zap.String("shortId", link.ShortID), zap.Error(err))
		}
	}

	return link, nil
}

// FindByShortID возвращает активную ссылку по короткому идентификатору.
// Просроченная запись считается отсутствующей и удаляется по обоим ключам.
func (s *LinkStore) FindByShortID(ctx context.Context, shortID string) (*model.Link, error) {
	return s.find(ctx, ShortIDKeyPrefix+shortID, func(ctx context.Context) (*model.Link, error) {
		if s.repo == nil {
			return nil, nil
		}
		return s.repo.GetByShortID(ctx, shortID)
	})
}

// FindByLongURL — симметричный поиск по оригинальному URL.
func (s *LinkStore) FindByLongURL(ctx context.Context, longURL string) (*model.Link, error) {
	return s.find(ctx, LongURLKeyPrefix+longURL, func(ctx context.Context) (*model.Link, error) {
		if s.repo == nil {
			return nil, nil
		}
		return s.repo.GetByLongURL(ctx, longURL)
	})
}

// DeleteByShortID удаляет ссылку по обоим ключам и возвращает удалённую
// запись, либо nil, если её не было.
func (s *LinkStore) DeleteByShortID(ctx context.Context, shortID string) (*model.Link, error) {
	link, err := s.lookupCache(ctx, ShortIDKeyPrefix+shortID)
	if err != nil {
		return nil, err
	}
	if link == nil && s.repo != nil {
		link, err = s.repo.GetByShortID(ctx, shortID)
		if err != nil {
			return nil, apperr.Store("Failed to find link", err)
		}
	}
	if link == nil {
		return nil, nil
	}
	if err := s.Remove(ctx, link); err != nil {
		return nil, apperr.Store("Failed to delete link", err)
	}
	return link, nil
}

// Remove удаляет оба ключа кэша и строку БД. Удаление уже отсутствующих
// ключей — no-op, поэтому гонка с ленивым удалением и сборщиком безопасна.
func (s *LinkStore) Remove(ctx context.Context, link *model.Link) error {
	if err := s.cache.Del(ctx, ShortIDKeyPrefix+link.ShortID, LongURLKeyPrefix+link.LongURL); err != nil {
		return err
	}
	if s.repo != nil {
		if err := s.repo.DeleteByShortID(ctx, link.ShortID); err != nil {
			s.logger.Error("durable store delete failed", zap.String("shortId", link.ShortID), zap.Error(err))
		}
	}
	return nil
}

// Decode разбирает сериализованную запись кэша.
func Decode(data []byte) (*model.Link, error) {
	var link model.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("decode link record: %w", err)
	}
	return &link, nil
}

// find — общий путь чтения: кэш, затем fallback, затем ленивое удаление
// просроченной записи.
func (s *LinkStore) find(ctx context.Context, key string, fallback func(context.Context) (*model.Link, error)) (*model.Link, error) {
	link, err := s.lookupCache(ctx, key)
	if err != nil {
		return nil, err
	}

	fromCache := link != nil
	if link == nil {
		link, err = fallback(ctx)
		if err != nil {
			return nil, apperr.Store("Failed to find link", err)
		}
		if link == nil {
			return nil, nil
		}
	}

	if s.ttl.Expired(link) {
		if err := s.Remove(ctx, link); err != nil {
			s.logger.Error("lazy expiration delete failed", zap.String("shortId", link.ShortID), zap.Error(err))
		}
		return nil, nil
	}

	if !fromCache {
		// Промах кэша при живой записи в БД: прогреваем оба ключа
		// с оставшимся TTL.
		if err := s.writePair(ctx, link, s.ttl.ExpiresAt(link)); err != nil {
			s.logger.Error("cache repopulate failed", zap.String("shortId", link.ShortID), zap.Error(err))
		}
	}

	return link, nil
}

// lookupCache читает и разбирает запись кэша. Ошибка бэкенда или битые данные
// не прерывают операцию: логируются и трактуются как промах.
func (s *LinkStore) lookupCache(ctx context.Context, key string) (*model.Link, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Error("cache read failed, falling through", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}
	link, err := Decode(data)
	if err != nil {
		s.logger.Error("cache record corrupted, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return link, nil
}

// writePair записывает обе записи пары с TTL из единой политики.
// Ошибка любой из записей — ошибка всей операции.
func (s *LinkStore) writePair(ctx context.Context, link *model.Link, expiresAt time.Time) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("encode link record: %w", err)
	}
	ttl := time.Duration(s.ttl.SecondsUntil(expiresAt)) * time.Second

	if err := s.cache.Set(ctx, ShortIDKeyPrefix+link.ShortID, data, ttl); err != nil {
		return fmt.Errorf("cache write (short id key): %w", err)
	}
	if err := s.cache.Set(ctx, LongURLKeyPrefix+link.LongURL, data, ttl); err != nil {
		return fmt.Errorf("cache write (long url key): %w", err)
	}
	return nil
}
