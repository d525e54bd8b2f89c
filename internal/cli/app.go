package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/filex"
	"github.com/dmitrijs2005/doclocker/internal/logging"
	"github.com/dmitrijs2005/doclocker/internal/services"
	"github.com/dmitrijs2005/doclocker/internal/session"
)

const banner = `==============================
   DocLocker document vault
==============================`

// errExit ends the menu loop without error.
var errExit = errors.New("exit")

type App struct {
	users services.UserService
	docs  services.DocumentService
	sess  *session.Session
	log   logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(users services.UserService, docs services.DocumentService, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		users:  users,
		docs:   docs,
		sess:   session.New(),
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

type menuItem struct {
	label string
	run   func(ctx context.Context) error
}

func (a *App) mainMenu() []menuItem {
	return []menuItem{
		{"Register", a.register},
		{"Login", a.login},
		{"Exit", func(context.Context) error { return errExit }},
	}
}

func (a *App) dashboard() []menuItem {
	return []menuItem{
		{"Upload Document", a.upload},
		{"View My Documents", a.list},
		{"Download Document", a.download},
		{"Delete Document", a.delete},
		{"Search Documents", a.search},
		{"Logout", a.logout},
	}
}

// Run drives the menus until the user exits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.println(banner)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := a.step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			a.println("Goodbye!")
			return nil
		case errors.Is(err, io.EOF):
			a.println()
			return nil
		default:
			a.println(message(err))
			a.log.Debug(ctx, "command failed", "error", err)
		}
	}
}

// step shows the menu for the current session state and runs one choice.
func (a *App) step(ctx context.Context) error {
	var items []menuItem
	title := "Main Menu"
	if a.sess.IsAuthenticated() {
		items = a.dashboard()
		title = "Dashboard"
		a.printHeader(ctx)
	} else {
		items = a.mainMenu()
	}

	a.println()
	a.println("--- " + title + " ---")
	for i, it := range items {
		a.printf("%d. %s\n", i+1, it.label)
	}

	choice, err := a.ask("Choose an option")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(items) {
		a.println("Invalid option. Please try again.")
		return nil
	}
	return items[n-1].run(ctx)
}

func (a *App) printHeader(ctx context.Context) {
	u, err := a.sess.User()
	if err != nil {
		return
	}
	a.println()
	a.printf("Welcome, %s!\n", u.FullName)

	sum, err := a.docs.Summary(ctx, a.sess)
	if err != nil {
		a.log.Warn(ctx, "failed to load summary", "error", err)
		return
	}
	a.printf("Documents: %d | Verified: %d | Pending: %d | Storage used: %s\n",
		sum.Total, sum.Verified, sum.Total-sum.Verified, filex.FormatSize(sum.TotalSize))
}

// requireLogin refuses document commands for anonymous sessions.
func (a *App) requireLogin() error {
	if !a.sess.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}
	return nil
}

// message turns a command error into what the user sees.
func message(err error) string {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return "Invalid input: " + ve.Error()
	case errors.Is(err, common.ErrNotAuthenticated):
		return "Please login first."
	case errors.Is(err, common.ErrUnauthorized):
		return "Invalid username or password."
	case errors.Is(err, common.ErrUsernameTaken):
		return "Username already exists."
	case errors.Is(err, common.ErrEmailTaken):
		return "Email already registered."
	case errors.Is(err, common.ErrInvalidCategory):
		return "Invalid category."
	case errors.Is(err, errInvalidID):
		return "Invalid document ID."
	case errors.Is(err, common.ErrContentMissing):
		return "Download failed: " + err.Error()
	case errors.Is(err, common.ErrNotFound):
		return "Document not found."
	default:
		return "Error: " + err.Error()
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
