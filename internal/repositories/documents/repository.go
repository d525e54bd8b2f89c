// Package documents persists document metadata. Every read and delete is
// keyed by the owner as well as the document id, so a caller can never reach
// another user's records.
package documents

import (
	"context"

	"github.com/dmitrijs2005/doclocker/internal/models"
)

type Repository interface {
	// Insert stores doc and returns it with the store-assigned ID set.
	Insert(ctx context.Context, doc *models.Document) (*models.Document, error)
	// GetByIDAndOwner returns common.ErrNotFound when the document is missing
	// or belongs to someone else.
	GetByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Document, error)
	// DeleteByIDAndOwner returns common.ErrNotFound under the same rule.
	DeleteByIDAndOwner(ctx context.Context, id int64, ownerID string) error
	// ListByOwner orders by upload time, then id.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error)
	// SearchByOwner narrows by owner and category in SQL and matches the term
	// with models.DocumentFilter.Match, so both stores fold case the same way.
	SearchByOwner(ctx context.Context, ownerID string, filter models.DocumentFilter) ([]models.Document, error)
	PathExists(ctx context.Context, path string) (bool, error)
}

const columns = `id, owner_id, name, type, path, size, category_id, upload_date, verified`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (*models.Document, error) {
	d := &models.Document{}
	err := s.Scan(&d.ID, &d.OwnerID, &d.Name, &d.Type, &d.StoragePath, &d.Size, &d.CategoryID, &d.UploadedAt, &d.Verified)
	if err != nil {
		return nil, err
	}
	d.UploadedAt = d.UploadedAt.UTC()
	return d, nil
}

func matching(docs []models.Document, filter models.DocumentFilter) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if filter.Match(d) {
			out = append(out, d)
		}
	}
	return out
}
