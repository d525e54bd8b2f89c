package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/doclocker/internal/filex"
	"github.com/dmitrijs2005/doclocker/internal/models"
	"github.com/dmitrijs2005/doclocker/internal/services"
)

const (
	dateLayout    = "2006-01-02 15:04:05"
	nameColumnMax = 30
)

var errInvalidID = errors.New("invalid document id")

func (a *App) upload(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.println()
	a.println("--- Upload Document ---")

	path, err := a.ask("File path")
	if err != nil {
		return err
	}
	name, err := a.ask("Document name (empty for the file name)")
	if err != nil {
		return err
	}
	category, err := a.chooseCategory("Category", false)
	if err != nil {
		return err
	}

	doc, err := a.docs.Upload(ctx, a.sess, services.UploadRequest{
		Name:       name,
		SourcePath: path,
		CategoryID: category,
	})
	if err != nil {
		return err
	}

	a.printf("Document uploaded successfully! ID: %d, size: %s\n", doc.ID, filex.FormatSize(doc.Size))
	return nil
}

func (a *App) list(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	docs, err := a.docs.List(ctx, a.sess)
	if err != nil {
		return err
	}

	a.println()
	a.println("--- My Documents ---")
	if len(docs) == 0 {
		a.println("No documents found.")
		return nil
	}
	a.printTable(docs)
	return nil
}

func (a *App) download(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.askID()
	if err != nil {
		return err
	}
	doc, err := a.docs.Get(ctx, a.sess, id)
	if err != nil {
		return err
	}
	a.printDetails(doc)

	dest, err := a.ask("Save as (empty for " + services.DefaultDownloadName(doc) + ")")
	if err != nil {
		return err
	}
	target := dest
	if target == "" {
		target = services.DefaultDownloadName(doc)
	}

	replace := false
	if _, err := os.Stat(target); err == nil {
		replace, err = a.confirm(fmt.Sprintf("%s already exists. Overwrite?", target))
		if err != nil {
			return err
		}
		if !replace {
			a.println("Download cancelled.")
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	written, err := a.docs.Download(ctx, a.sess, id, target, replace)
	if err != nil {
		return err
	}
	a.printf("Document saved to %s\n", written)
	return nil
}

func (a *App) delete(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.askID()
	if err != nil {
		return err
	}
	doc, err := a.docs.Get(ctx, a.sess, id)
	if err != nil {
		return err
	}

	ok, err := a.confirm(fmt.Sprintf("Delete %q?", doc.Name))
	if err != nil {
		return err
	}
	if !ok {
		a.println("Deletion cancelled.")
		return nil
	}

	res, err := a.docs.Delete(ctx, a.sess, id)
	if err != nil {
		return err
	}
	if res.FileErr != nil {
		a.printf("Document record deleted, but the file could not be removed: %v\n", res.FileErr)
		return nil
	}
	a.println("Document deleted successfully.")
	return nil
}

func (a *App) search(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	term, err := a.ask("Search term")
	if err != nil {
		return err
	}
	category, err := a.chooseCategory("Filter by category (0 for all)", true)
	if err != nil {
		return err
	}

	docs, err := a.docs.Search(ctx, a.sess, services.SearchRequest{Term: term, CategoryID: category})
	if err != nil {
		return err
	}

	a.println()
	if len(docs) == 0 {
		a.printf("No documents match %q.\n", term)
		return nil
	}
	a.printf("Found %d document(s):\n", len(docs))
	a.printTable(docs)
	return nil
}

// chooseCategory lists the categories and reads a number. With allowAll an
// empty answer or 0 means no filter. Anything unparsable comes back as an id
// the service rejects.
func (a *App) chooseCategory(prompt string, allowAll bool) (int, error) {
	for _, c := range a.docs.ListCategories() {
		a.printf("  %d. %s\n", c.ID, c.Name)
	}
	answer, err := a.ask(prompt)
	if err != nil {
		return 0, err
	}
	if allowAll && answer == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil || (n == 0 && !allowAll) {
		return -1, nil
	}
	return n, nil
}

func (a *App) askID() (int64, error) {
	answer, err := a.ask("Document ID")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func (a *App) printTable(docs []models.Document) {
	a.printf("%-5s %-30s %-8s %-12s %-20s %s\n", "ID", "Document Name", "Type", "Category", "Upload Date", "Verified")
	a.println(strings.Repeat("-", 86))
	var total int64
	for _, d := range docs {
		a.printf("%-5d %-30s %-8s %-12s %-20s %s\n",
			d.ID, truncate(d.Name, nameColumnMax), d.Type, models.CategoryName(d.CategoryID),
			d.UploadedAt.Format(dateLayout), yesNo(d.Verified))
		total += d.Size
	}
	a.println(strings.Repeat("-", 86))
	a.printf("Total: %d document(s), %s\n", len(docs), filex.FormatSize(total))
}

func (a *App) printDetails(d *models.Document) {
	a.println()
	a.printf("Name:     %s\n", d.Name)
	a.printf("Type:     %s\n", d.Type)
	a.printf("Size:     %s\n", filex.FormatSize(d.Size))
	a.printf("Category: %s\n", models.CategoryName(d.CategoryID))
	a.printf("Uploaded: %s\n", d.UploadedAt.Format(dateLayout))
	a.printf("Verified: %s\n", yesNo(d.Verified))
}

// truncate shortens s to limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
