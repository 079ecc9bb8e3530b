package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/newsletter-email-server/internal/domain"
)

// NewsletterRepo — pgx-реализация worker.Directory: подписчики и
// авторы рассылок. Схема принадлежит app-server'у, здесь только чтение.
type NewsletterRepo struct {
	pool *pgxpool.Pool
}

// NewNewsletterRepo создаёт новый NewsletterRepo.
func NewNewsletterRepo(pool *pgxpool.Pool) *NewsletterRepo {
	return &NewsletterRepo{pool: pool}
}

// FetchSubscribers возвращает всех подписчиков рассылки.
// Пустая рассылка — пустой срез; несуществующая — ErrNotFound
// (пустоту и отсутствие записи нельзя различить по subscribers).
func (r *NewsletterRepo) FetchSubscribers(ctx context.Context, newsletterID int64) ([]domain.Subscriber, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM newsletters WHERE id = $1`, newsletterID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("newsletter %d: %w", newsletterID, ErrNotFound)
		}
		return nil, fmt.Errorf("check newsletter: %w", err)
	}

	query := `
		SELECT email
		FROM subscribers
		WHERE newsletter_id = $1
	`
	rows, err := r.pool.Query(ctx, query, newsletterID)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.Email); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}

	return subscribers, nil
}

// FetchAuthor возвращает автора рассылки.
// ErrNotFound, если рассылка или её автор не существуют.
func (r *NewsletterRepo) FetchAuthor(ctx context.Context, newsletterID int64) (domain.Author, error) {
	query := `
		SELECT a.name
		FROM newsletters n
		JOIN authors a ON a.id = n.author_id
		WHERE n.id = $1
	`
	var author domain.Author
	err := r.pool.QueryRow(ctx, query, newsletterID).Scan(&author.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Author{}, fmt.Errorf("newsletter %d: %w", newsletterID, ErrNotFound)
		}
		return domain.Author{}, fmt.Errorf("get author: %w", err)
	}

	return author, nil
}
