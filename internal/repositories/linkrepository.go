package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rydeu/LinkShortener/internal/database"
	"github.com/rydeu/LinkShortener/internal/model"
)

// LinkRepositoryInterface определяет методы долговременного хранилища ссылок.
// Слой кэша использует его как fallback на промахах и ошибках Redis.
type LinkRepositoryInterface interface {
	SaveLink(ctx context.Context, link *model.Link) error
	GetByShortID(ctx context.Context, shortID string) (*model.Link, error)
	GetByLongURL(ctx context.Context, longURL string) (*model.Link, error)
	DeleteByShortID(ctx context.Context, shortID string) error
	Ping(ctx context.Context) error
}

// LinkRepository реализует LinkRepositoryInterface с использованием PostgreSQL.
type LinkRepository struct {
	DB database.DBInterface
}

// NewLinkRepository создаёт новый экземпляр LinkRepository.
func NewLinkRepository(db database.DBInterface) *LinkRepository {
	return &LinkRepository{DB: db}
}

// SaveLink сохраняет ссылку в базу данных. Повтор по long_url не считается
// ошибкой: активный дубликат отфильтровывается выше, на слое кэша.
func (r *LinkRepository) SaveLink(ctx context.Context, link *model.Link) error {
	query := `INSERT INTO links (short_id, long_url, user_type, booking_start_time, deep_link, ios_link, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (short_id) DO NOTHING`

	_, err := r.DB.(*database.DB).Pool.Exec(ctx, query,
		link.ShortID, link.LongURL, string(link.UserType), link.BookingStartTime,
		nullable(link.DeepLink), nullable(link.IOSLink), link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// GetByShortID извлекает ссылку по короткому идентификатору.
func (r *LinkRepository) GetByShortID(ctx context.Context, shortID string) (*model.Link, error) {
	query := `SELECT short_id, long_url, user_type, booking_start_time, deep_link, ios_link, created_at
              FROM links WHERE short_id = $1`
	return r.scanOne(ctx, query, shortID)
}

// GetByLongURL извлекает ссылку по оригинальному URL.
func (r *LinkRepository) GetByLongURL(ctx context.Context, longURL string) (*model.Link, error) {
	query := `SELECT short_id, long_url, user_type, booking_start_time, deep_link, ios_link, created_at
              FROM links WHERE long_url = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(ctx, query, longURL)
}

func (r *LinkRepository) scanOne(ctx context.Context, query string, arg any) (*model.Link, error) {
	var (
		link     model.Link
		userType string
		deepLink *string
		iosLink  *string
	)
	err := r.DB.(*database.DB).Pool.QueryRow(ctx, query, arg).Scan(
		&link.ShortID, &link.LongURL, &userType, &link.BookingStartTime, &deepLink, &iosLink, &link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	link.UserType = model.UserType(userType)
	if deepLink != nil {
		link.DeepLink = *deepLink
	}
	if iosLink != nil {
		link.IOSLink = *iosLink
	}
	return &link, nil
}

// DeleteByShortID удаляет запись; отсутствие строки не является ошибкой.
func (r *LinkRepository) DeleteByShortID(ctx context.Context, shortID string) error {
	_, err := r.DB.(*database.DB).Pool.Exec(ctx, `DELETE FROM links WHERE short_id = $1`, shortID)
	if err != nil {
		return fmt.Errorf("database delete error: %w", err)
	}
	return nil
}

// Ping проверяет доступность базы данных.
func (r *LinkRepository) Ping(ctx context.Context) error {
	_, err := r.DB.(*database.DB).Pool.Exec(ctx, "SELECT 1")
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
