package models

// Object is the item a report is about.
type Object struct {
	ID       string
	Name     string
	Color    string
	State    string
	Place    string
	Category string
	// Image is the public path of the stored photo, empty when none.
	Image string
}

// ObjectSummary is one search hit.
type ObjectSummary struct {
	ID       string `json:"ID_OBJETO"`
	Name     string `json:"NOMBRE"`
	Color    string `json:"COLOR"`
	Image    string `json:"IMAGEN,omitempty"`
	Category string `json:"ID_CATEGORIA"`
}
