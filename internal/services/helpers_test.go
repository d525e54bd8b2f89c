package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/doclocker/internal/cryptox"
	"github.com/dmitrijs2005/doclocker/internal/dbx"
	"github.com/dmitrijs2005/doclocker/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/doclocker/internal/filestore"
	"github.com/dmitrijs2005/doclocker/internal/filestore/filestoretest"
	"github.com/dmitrijs2005/doclocker/internal/logging"
	"github.com/dmitrijs2005/doclocker/internal/models"
	"github.com/dmitrijs2005/doclocker/internal/repositories/documents"
	"github.com/dmitrijs2005/doclocker/internal/repositories/repomanager"
	"github.com/dmitrijs2005/doclocker/internal/session"
)

type fixture struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	store *filestoretest.MemStore
	users UserService
	docs  DocumentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbxtest.NewSQLite(t)
	rm := repomanager.NewSQLiteRepositoryManager()
	store := filestoretest.NewMemStore()
	v := NewValidator()
	log := logging.Discard()

	return &fixture{
		db:    db,
		rm:    rm,
		store: store,
		users: NewUserService(db, rm, cryptox.NewBcryptVerifier(bcrypt.MinCost), v, log),
		docs:  NewDocumentService(db, rm, store, filestore.NewNamer(), v, log),
	}
}

// login registers a user and returns a session for it.
func (f *fixture) login(t *testing.T, username string) *session.Session {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    username + "@example.org",
		Password: []byte("pw-" + username),
		FullName: "User " + username,
	})
	require.NoError(t, err)

	s := session.New()
	s.Login(*u)
	return s
}

// failingRM wraps a manager and swaps in a document repository whose Insert
// fails.
type failingRM struct {
	repomanager.RepositoryManager
	insertErr error
}

func (m failingRM) Documents(db dbx.DBTX) documents.Repository {
	return failingDocs{Repository: m.RepositoryManager.Documents(db), insertErr: m.insertErr}
}

type failingDocs struct {
	documents.Repository
	insertErr error
}

func (r failingDocs) Insert(context.Context, *models.Document) (*models.Document, error) {
	return nil, r.insertErr
}

// takenPaths reports every path as taken.
type takenPaths struct {
	repomanager.RepositoryManager
}

func (m takenPaths) Documents(db dbx.DBTX) documents.Repository {
	return alwaysTaken{m.RepositoryManager.Documents(db)}
}

type alwaysTaken struct{ documents.Repository }

func (alwaysTaken) PathExists(context.Context, string) (bool, error) { return true, nil }

var errBoom = errors.New("boom")
