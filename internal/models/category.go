package models

// Category is a fixed bucket a document is filed under.
type Category struct {
	ID   int
	Name string
}

const (
	CategoryIdentity   = 1
	CategoryEducation  = 2
	CategoryEmployment = 3
	CategoryMedical    = 4
	CategoryFinancial  = 5
	CategoryOthers     = 6
)

// categories is kept in display order. The same rows are seeded by the
// initial migration.
var categories = []Category{
	{ID: CategoryIdentity, Name: "Identity"},
	{ID: CategoryEducation, Name: "Education"},
	{ID: CategoryEmployment, Name: "Employment"},
	{ID: CategoryMedical, Name: "Medical"},
	{ID: CategoryFinancial, Name: "Financial"},
	{ID: CategoryOthers, Name: "Others"},
}

// Categories returns a copy of all categories in definition order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a category by its id.
func CategoryByID(id int) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName returns the display name for id, or "Unknown".
func CategoryName(id int) string {
	if c, ok := CategoryByID(id); ok {
		return c.Name
	}
	return "Unknown"
}
