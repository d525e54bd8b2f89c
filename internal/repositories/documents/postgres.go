package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/dbx"
	"github.com/dmitrijs2005/doclocker/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO documents (owner_id, name, type, path, size, category_id, upload_date, verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`

	out := *doc
	err := r.db.QueryRowContext(ctx, query,
		doc.OwnerID, doc.Name, doc.Type, doc.StoragePath, doc.Size, doc.CategoryID, doc.UploadedAt, doc.Verified).
		Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}

	return &out, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents WHERE id = $1 AND owner_id = $2`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) DeleteByIDAndOwner(ctx context.Context, id int64, ownerID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents WHERE owner_id = $1 ORDER BY upload_date, id`
	return r.query(ctx, query, ownerID)
}

func (r *PostgresRepository) SearchByOwner(ctx context.Context, ownerID string, filter models.DocumentFilter) ([]models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents
		WHERE owner_id = $1
		  AND ($2 = 0 OR category_id = $2)
		ORDER BY upload_date, id`
	docs, err := r.query(ctx, query, ownerID, filter.CategoryID)
	if err != nil {
		return nil, err
	}
	return matching(docs, filter), nil
}

func (r *PostgresRepository) PathExists(ctx context.Context, path string) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE path = $1)`, path).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check document path: %w", err)
	}
	return found, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}
