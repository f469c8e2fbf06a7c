package domain

// Category classifies an itinerary activity by keyword.
type Category string

const (
	CategoryFood     Category = "food"
	CategoryCulture  Category = "culture"
	CategoryNature   Category = "nature"
	CategoryShopping Category = "shopping"
	CategoryGeneral  Category = "general"
)

// DayEntry is one day of a parsed itinerary. It is derived on read and never persisted.
// Number is taken verbatim from the text, so duplicates and gaps are possible.
type DayEntry struct {
	Number     int
	Title      string
	Activities []ActivityEntry
}

// ActivityEntry is a single line within a day. Time is empty when the line
// carried no leading clock time.
type ActivityEntry struct {
	Time        string
	Description string
	Category    Category
}
