package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"SummaryHub/internal/domain"
	"SummaryHub/internal/ports"
)

// PostgresRepository reads stored files and links. The rows belong to the
// storage collaborator; this repository never mutates them.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ItemRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetFile returns the stored file row scoped to its owner.
func (r *PostgresRepository) GetFile(ctx context.Context, id, userID string) (domain.ContentItem, error) {
	query, args, err := r.builder.
		Select("id", "name", "file_url", "file_type", "created_at").
		From("files").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("build file query: %w", err)
	}

	item := domain.ContentItem{Kind: domain.KindFile, UserID: userID}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.Name, &item.URL, &item.MimeType, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ContentItem{}, fmt.Errorf("file %s: %w", id, domain.ErrItemNotFound)
		}
		return domain.ContentItem{}, fmt.Errorf("scan file %s: %w", id, err)
	}

	return item, nil
}

// GetLink returns the stored link row scoped to its owner.
func (r *PostgresRepository) GetLink(ctx context.Context, id, userID string) (domain.ContentItem, error) {
	query, args, err := r.builder.
		Select("id", "title", "url", "created_at").
		From("links").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("build link query: %w", err)
	}

	item := domain.ContentItem{Kind: domain.KindLink, UserID: userID}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.Name, &item.URL, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ContentItem{}, fmt.Errorf("link %s: %w", id, domain.ErrItemNotFound)
		}
		return domain.ContentItem{}, fmt.Errorf("scan link %s: %w", id, err)
	}

	return item, nil
}
