package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/filestore"
	"github.com/dmitrijs2005/doclocker/internal/filex"
	"github.com/dmitrijs2005/doclocker/internal/logging"
	"github.com/dmitrijs2005/doclocker/internal/models"
	"github.com/dmitrijs2005/doclocker/internal/repositories/repomanager"
	"github.com/dmitrijs2005/doclocker/internal/session"
)

// UploadRequest describes a new document. Content comes from SourcePath when
// it is set, otherwise from Content, with OriginalName supplying the file name
// the type is derived from. An empty Name defaults to the original file name.
type UploadRequest struct {
	Name         string `validate:"required,max=255" label:"document name"`
	SourcePath   string
	Content      []byte
	OriginalName string
	CategoryID   int
}

// SearchRequest matches Term case-insensitively against document names.
// A zero CategoryID searches every category.
type SearchRequest struct {
	Term       string
	CategoryID int
}

// DeleteResult reports a successful metadata delete. FileErr is set when the
// stored content could not be removed afterwards.
type DeleteResult struct {
	Document models.Document
	FileErr  error
}

// DocumentService is the owner-scoped document catalog. Every method that
// takes a session fails with common.ErrNotAuthenticated for an anonymous one,
// and a document owned by someone else is reported exactly like a missing one,
// as common.ErrNotFound.
type DocumentService interface {
	ListCategories() []models.Category
	Upload(ctx context.Context, sess *session.Session, req UploadRequest) (*models.Document, error)
	List(ctx context.Context, sess *session.Session) ([]models.Document, error)
	Get(ctx context.Context, sess *session.Session, id int64) (*models.Document, error)
	Delete(ctx context.Context, sess *session.Session, id int64) (*DeleteResult, error)
	Search(ctx context.Context, sess *session.Session, req SearchRequest) ([]models.Document, error)
	Download(ctx context.Context, sess *session.Session, id int64, dest string, replace bool) (string, error)
	Summary(ctx context.Context, sess *session.Session) (*models.Summary, error)
}

type documentService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	store    filestore.Store
	namer    *filestore.Namer
	validate *validator.Validate
	log      logging.Logger

	now func() time.Time
}

func NewDocumentService(db *sql.DB, rm repomanager.RepositoryManager, store filestore.Store,
	namer *filestore.Namer, validate *validator.Validate, log logging.Logger) DocumentService {
	return &documentService{
		db:       db,
		rm:       rm,
		store:    store,
		namer:    namer,
		validate: validate,
		log:      log,
		now:      time.Now,
	}
}

func (s *documentService) ListCategories() []models.Category {
	return models.Categories()
}

func (s *documentService) Upload(ctx context.Context, sess *session.Session, req UploadRequest) (*models.Document, error) {
	user, err := sess.User()
	if err != nil {
		return nil, err
	}

	if _, ok := models.CategoryByID(req.CategoryID); !ok {
		return nil, common.ErrInvalidCategory
	}

	original := req.OriginalName
	if req.SourcePath != "" {
		original = filepath.Base(req.SourcePath)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = strings.TrimSpace(original)
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	content, closeContent, err := openContent(req)
	if err != nil {
		return nil, err
	}
	defer closeContent()

	repo := s.rm.Documents(s.db)

	key, err := s.freshKey(ctx, user.ID, original)
	if err != nil {
		return nil, err
	}

	location, size, err := s.store.Put(ctx, key, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc, err := repo.Insert(ctx, &models.Document{
		OwnerID:     user.ID,
		Name:        req.Name,
		Type:        filex.Extension(original),
		StoragePath: location,
		Size:        size,
		CategoryID:  req.CategoryID,
		UploadedAt:  storedTime(s.now()),
	})
	if err != nil {
		if rmErr := s.store.Remove(ctx, location); rmErr != nil {
			s.log.Warn(ctx, "failed to remove orphaned file", "location", location, "error", rmErr)
		}
		return nil, err
	}

	s.log.Info(ctx, "document uploaded", "id", doc.ID, "owner_id", user.ID, "size", doc.Size)
	return doc, nil
}

func openContent(req UploadRequest) (io.Reader, func(), error) {
	if req.SourcePath == "" {
		if req.Content == nil {
			return nil, nil, common.NewValidationError("file path or content is required")
		}
		return bytes.NewReader(req.Content), func() {}, nil
	}

	f, err := os.Open(req.SourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat source file: %w", err)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, nil, common.NewValidationError(fmt.Sprintf("%s is a directory", req.SourcePath))
	}
	return f, func() { _ = f.Close() }, nil
}

const maxKeyAttempts = 16

// freshKey returns an object name whose location no catalog record uses yet.
func (s *documentService) freshKey(ctx context.Context, ownerID, original string) (string, error) {
	repo := s.rm.Documents(s.db)
	for i := 0; i < maxKeyAttempts; i++ {
		key := s.namer.Next(ownerID, original)
		taken, err := repo.PathExists(ctx, s.store.Location(key))
		if err != nil {
			return "", err
		}
		if !taken {
			return key, nil
		}
	}
	return "", errors.New("failed to allocate a storage name")
}

func (s *documentService) List(ctx context.Context, sess *session.Session) ([]models.Document, error) {
	user, err := sess.User()
	if err != nil {
		return nil, err
	}
	return s.rm.Documents(s.db).ListByOwner(ctx, user.ID)
}

func (s *documentService) Get(ctx context.Context, sess *session.Session, id int64) (*models.Document, error) {
	user, err := sess.User()
	if err != nil {
		return nil, err
	}
	return s.rm.Documents(s.db).GetByIDAndOwner(ctx, id, user.ID)
}

// Delete removes the catalog record first. Content that cannot be removed
// afterwards is reported in DeleteResult.FileErr, not as an error.
func (s *documentService) Delete(ctx context.Context, sess *session.Session, id int64) (*DeleteResult, error) {
	user, err := sess.User()
	if err != nil {
		return nil, err
	}

	repo := s.rm.Documents(s.db)

	doc, err := repo.GetByIDAndOwner(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	if err := repo.DeleteByIDAndOwner(ctx, id, user.ID); err != nil {
		return nil, err
	}

	res := &DeleteResult{Document: *doc}
	if err := s.store.Remove(ctx, doc.StoragePath); err != nil {
		s.log.Warn(ctx, "document record deleted but file removal failed", "id", id, "location", doc.StoragePath, "error", err)
		res.FileErr = err
	}

	s.log.Info(ctx, "document deleted", "id", id, "owner_id", user.ID)
	return res, nil
}

func (s *documentService) Search(ctx context.Context, sess *session.Session, req SearchRequest) ([]models.Document, error) {
	user, err := sess.User()
	if err != nil {
		return nil, err
	}
	if req.CategoryID != 0 {
		if _, ok := models.CategoryByID(req.CategoryID); !ok {
			return nil, common.ErrInvalidCategory
		}
	}

	return s.rm.Documents(s.db).SearchByOwner(ctx, user.ID, models.DocumentFilter{
		Term:       strings.TrimSpace(req.Term),
		CategoryID: req.CategoryID,
	})
}

// Download copies the document to dest and returns the path written. An empty
// dest means "<name>.<type>" in the working directory.
func (s *documentService) Download(ctx context.Context, sess *session.Session, id int64, dest string, replace bool) (string, error) {
	doc, err := s.Get(ctx, sess, id)
	if err != nil {
		return "", err
	}

	if dest == "" {
		dest = DefaultDownloadName(doc)
	}

	if err := filestore.Retrieve(ctx, s.store, doc.StoragePath, dest, replace); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", fmt.Errorf("%w: document %d at %s: %v", common.ErrContentMissing, doc.ID, doc.StoragePath, err)
		}
		return "", err
	}

	return dest, nil
}

// DefaultDownloadName is "<name>.<type>" with path separators replaced, so the
// result always names a file in the working directory.
func DefaultDownloadName(doc *models.Document) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(doc.Name)
	if name == "" || name == "." || name == ".." {
		name = "document"
	}
	return name + "." + doc.Type
}

func (s *documentService) Summary(ctx context.Context, sess *session.Session) (*models.Summary, error) {
	docs, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	sum := &models.Summary{Total: len(docs)}
	for _, d := range docs {
		if d.Verified {
			sum.Verified++
		}
		sum.TotalSize += d.Size
		counts[d.CategoryID]++
	}
	for _, c := range models.Categories() {
		sum.ByCategory = append(sum.ByCategory, models.CategoryCount{Category: c, Count: counts[c.ID]})
	}

	return sum, nil
}
