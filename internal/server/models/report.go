package models

import (
	"fmt"
	"time"
)

// ReportKind tells lost reports from found ones.
type ReportKind string

const (
	ReportLost  ReportKind = "perdido"
	ReportFound ReportKind = "encontrado"
)

// ParseReportKind accepts the wire names and a few English aliases.
// The empty string yields ("", nil): no kind restriction.
func ParseReportKind(s string) (ReportKind, error) {
	switch s {
	case "":
		return "", nil
	case "perdido", "perdidos", "lost":
		return ReportLost, nil
	case "encontrado", "encontrados", "found":
		return ReportFound, nil
	default:
		return "", fmt.Errorf("unknown report kind %q", s)
	}
}

// Report is a user's claim that an object was lost or found. Category is a
// denormalized copy of the object's category.
type Report struct {
	ID          string
	Kind        ReportKind
	Date        *time.Time
	Observation string
	ObjectID    string
	UserID      string
	FileNumber  *int
	Category    string
}

// UserReport is a report joined with its object, as listed on a profile.
type UserReport struct {
	ReportID    string     `json:"id_reporte"`
	Kind        ReportKind `json:"tipo"`
	Date        *time.Time `json:"fecha,omitempty"`
	Observation string     `json:"observaciones,omitempty"`
	FileNumber  *int       `json:"ficha,omitempty"`
	Object      Object     `json:"objeto"`
}
