package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Document is the catalog record for one stored file.
//
// StoragePath is the location returned by the file store and is unique across
// the catalog. Verified defaults to false and is never changed by this
// application.
type Document struct {
	ID          int64
	OwnerID     string
	Name        string
	Type        string
	StoragePath string
	Size        int64
	CategoryID  int
	UploadedAt  time.Time
	Verified    bool
}

// DocumentFilter narrows an owner's documents. A zero CategoryID matches
// every category; an empty Term matches every name.
type DocumentFilter struct {
	Term       string
	CategoryID int
}

// Match reports whether d passes the filter. Term is compared with full
// Unicode case folding, so "ärztlicher" matches "ÄRZTLICHER" and "strasse"
// matches "Straße".
func (f DocumentFilter) Match(d Document) bool {
	if f.CategoryID != 0 && d.CategoryID != f.CategoryID {
		return false
	}
	if f.Term == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(d.Name), fold.String(f.Term))
}

// CategoryCount is the number of documents filed under one category.
type CategoryCount struct {
	Category Category
	Count    int
}

// Summary aggregates an owner's documents for the dashboard header.
type Summary struct {
	Total      int
	Verified   int
	TotalSize  int64
	ByCategory []CategoryCount
}
