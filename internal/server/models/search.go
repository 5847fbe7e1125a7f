package models

// SearchFilter carries the optional, AND-combined search criteria.
// Zero values mean "no restriction".
type SearchFilter struct {
	// Text matches the object name or category, case-insensitively, as a substring.
	Text string
	// Category must equal the object's category exactly.
	Category string
	// Color matches the object's color, case-insensitively, as a substring.
	Color string
	// Kind keeps only objects with at least one report of that kind.
	Kind ReportKind
}
