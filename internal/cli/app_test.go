package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/cryptox"
	"github.com/dmitrijs2005/doclocker/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/doclocker/internal/filestore"
	"github.com/dmitrijs2005/doclocker/internal/filestore/filestoretest"
	"github.com/dmitrijs2005/doclocker/internal/logging"
	"github.com/dmitrijs2005/doclocker/internal/repositories/repomanager"
	"github.com/dmitrijs2005/doclocker/internal/services"
)

func TestMain(m *testing.M) {
	isTerminal = func(int) bool { return false }
	os.Exit(m.Run())
}

type testEnv struct {
	app   *App
	out   *bytes.Buffer
	users services.UserService
	docs  services.DocumentService
	store *filestoretest.MemStore
}

func newTestEnv(t *testing.T, lines ...string) *testEnv {
	t.Helper()
	db := dbxtest.NewSQLite(t)
	rm := repomanager.NewSQLiteRepositoryManager()
	store := filestoretest.NewMemStore()
	v := services.NewValidator()
	log := logging.Discard()

	users := services.NewUserService(db, rm, cryptox.PlainVerifier{}, v, log)
	docs := services.NewDocumentService(db, rm, store, filestore.NewNamer(), v, log)

	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}
	out := &bytes.Buffer{}

	return &testEnv{
		app:   NewApp(users, docs, strings.NewReader(input), out, log),
		out:   out,
		users: users,
		docs:  docs,
		store: store,
	}
}

// seedUser registers alice with password "pw".
func (e *testEnv) seedUser(t *testing.T) {
	t.Helper()
	_, err := e.users.Register(context.Background(), services.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.org",
		Password: []byte("pw"),
		FullName: "Alice Liddell",
	})
	require.NoError(t, err)
}

// loginAlice seeds alice and logs her in directly.
func (e *testEnv) loginAlice(t *testing.T) {
	t.Helper()
	e.seedUser(t)
	u, err := e.users.Authenticate(context.Background(), "alice", []byte("pw"))
	require.NoError(t, err)
	e.app.sess.Login(*u)
}

func (e *testEnv) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, e.app.Run(context.Background()))
	return e.out.String()
}

func TestRun_InvalidOptionsThenExit(t *testing.T) {
	e := newTestEnv(t, "9", "abc", "", "0", "3")
	out := e.run(t)

	assert.Contains(t, out, "DocLocker document vault")
	assert.Equal(t, 4, strings.Count(out, "Invalid option. Please try again."))
	assert.Contains(t, out, "1. Register")
	assert.Contains(t, out, "2. Login")
	assert.Contains(t, out, "3. Exit")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestRun_EOFExits(t *testing.T) {
	e := newTestEnv(t)
	out := e.run(t)
	assert.Contains(t, out, "--- Main Menu ---")
	assert.NotContains(t, out, "Goodbye!")
}

func TestRun_EOFInsideCommandExits(t *testing.T) {
	e := newTestEnv(t, "1", "alice")
	e.run(t)
	exists, err := e.users.UsernameExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRun_CanceledContext(t *testing.T) {
	e := newTestEnv(t, "3")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.app.Run(ctx), context.Canceled)
}

func TestRun_RegisterLoginLogout(t *testing.T) {
	e := newTestEnv(t,
		"1", "alice", "alice@example.org", "pw", "Alice Liddell", "",
		"2", "alice", "pw",
		"2",
		"6",
		"3",
	)
	out := e.run(t)

	assert.Contains(t, out, "Registration successful!")
	assert.Contains(t, out, "Login successful!")
	assert.Contains(t, out, "Welcome, Alice Liddell!")
	assert.Contains(t, out, "Documents: 0 | Verified: 0 | Pending: 0 | Storage used: 0 B")
	assert.Contains(t, out, "--- Dashboard ---")
	assert.Contains(t, out, "6. Logout")
	assert.Contains(t, out, "No documents found.")
	assert.Contains(t, out, "You have been logged out.")
	assert.False(t, e.app.sess.IsAuthenticated())
}

func TestRun_RegisterRejectsTakenValues(t *testing.T) {
	e := newTestEnv(t,
		"1", "alice",
		"1", "bob", "alice@example.org",
		"1", "b", "b@example.org", "pw", "Bob", "",
		"3",
	)
	e.seedUser(t)
	out := e.run(t)

	assert.Contains(t, out, "Username already exists.")
	assert.Contains(t, out, "Email already registered.")
	assert.Contains(t, out, "Invalid input: username must be at least 3 characters")
}

func TestRun_LoginFailure(t *testing.T) {
	e := newTestEnv(t, "2", "alice", "wrong", "2", "nobody", "pw", "3")
	e.seedUser(t)
	out := e.run(t)

	assert.Equal(t, 2, strings.Count(out, "Invalid username or password."))
	assert.False(t, e.app.sess.IsAuthenticated())
}

func TestCommandsRequireLogin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	for name, cmd := range map[string]func(context.Context) error{
		"upload":   e.app.upload,
		"list":     e.app.list,
		"download": e.app.download,
		"delete":   e.app.delete,
		"search":   e.app.search,
		"logout":   e.app.logout,
	} {
		err := cmd(ctx)
		assert.ErrorIs(t, err, common.ErrNotAuthenticated, name)
		assert.Equal(t, "Please login first.", message(err), name)
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Invalid input: a; b", message(common.NewValidationError("a", "b")))
	assert.Equal(t, "Invalid category.", message(common.ErrInvalidCategory))
	assert.Equal(t, "Document not found.", message(common.ErrNotFound))
	assert.Equal(t, "Download failed: stored file is missing: gone", message(fmt.Errorf("%w: gone", common.ErrContentMissing)))
	assert.Equal(t, "Invalid document ID.", message(errInvalidID))
	assert.Equal(t, "Error: disk on fire", message(assertErr("disk on fire")))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
