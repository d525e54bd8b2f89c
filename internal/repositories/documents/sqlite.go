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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query := `INSERT INTO documents (owner_id, name, type, path, size, category_id, upload_date, verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
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

func (r *SQLiteRepository) GetByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents WHERE id = ? AND owner_id = ?`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) DeleteByIDAndOwner(ctx context.Context, id int64, ownerID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ? AND owner_id = ?`, id, ownerID)
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

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents WHERE owner_id = ? ORDER BY upload_date, id`
	return r.query(ctx, query, ownerID)
}

func (r *SQLiteRepository) SearchByOwner(ctx context.Context, ownerID string, filter models.DocumentFilter) ([]models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents
		WHERE owner_id = ?
		  AND (? = 0 OR category_id = ?)
		ORDER BY upload_date, id`
	docs, err := r.query(ctx, query, ownerID, filter.CategoryID, filter.CategoryID)
	if err != nil {
		return nil, err
	}
	return matching(docs, filter), nil
}

func (r *SQLiteRepository) PathExists(ctx context.Context, path string) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE path = ?)`, path).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check document path: %w", err)
	}
	return found, nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]models.Document, error) {
	docs := make([]models.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}
