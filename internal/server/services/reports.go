package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/dbx"
	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/orio/internal/server/storage"
)

// Client-facing messages of report intake.
const (
	MsgReportFieldsRequired = "Completa los campos obligatorios"
	MsgInvalidDate          = "La fecha debe tener el formato AAAA-MM-DD"
	MsgInvalidFileNumber    = "La ficha debe ser un número"
	MsgDuplicateFound       = "Ya reportaste este objeto como encontrado"
	MsgLoginRequired        = "Debes iniciar sesión"
)

// maxIDAttempts bounds how many random identifiers are drawn per row
// before a submission gives up.
const maxIDAttempts = 5

const dateLayout = "2006-01-02"

// Image is an uploaded photo.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// SubmitInput is one lost or found report. UserID comes from the session.
type SubmitInput struct {
	Kind        models.ReportKind
	UserID      string
	Name        string
	Color       string
	State       string
	Place       string
	Date        string
	Observation string
	FileNumber  string
	Category    string
	Image       *Image
}

// SubmitResult identifies what a submission stored. ImagePath is empty
// when no image was attached.
type SubmitResult struct {
	ObjectID  string
	ReportID  string
	ImagePath string
}

type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ImageStore
	log         logging.Logger
	newID       func() (string, error)
}

func NewReportService(db *sql.DB, m repomanager.RepositoryManager, store storage.ImageStore, log logging.Logger) *ReportService {
	return &ReportService{
		db:          db,
		repomanager: m,
		store:       store,
		log:         log.With("module", "reports"),
		newID: func() (string, error) {
			return common.RandomNumericID(common.NumericIDLength)
		},
	}
}

type reportFields struct {
	date       *time.Time
	fileNumber *int
}

func (in *SubmitInput) normalize() (*reportFields, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	in.State = strings.TrimSpace(in.State)
	in.Place = strings.TrimSpace(in.Place)
	in.Category = strings.TrimSpace(in.Category)
	in.Observation = strings.TrimSpace(in.Observation)

	if in.Name == "" || in.Color == "" || in.State == "" || in.Place == "" || in.Category == "" {
		return nil, common.NewUserError(common.ErrorValidation, MsgReportFieldsRequired)
	}

	f := &reportFields{}

	if d := strings.TrimSpace(in.Date); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return nil, common.NewUserError(common.ErrorValidation, MsgInvalidDate)
		}
		f.date = &t
	}

	if n := strings.TrimSpace(in.FileNumber); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil {
			return nil, common.NewUserError(common.ErrorValidation, MsgInvalidFileNumber)
		}
		f.fileNumber = &v
	}

	return f, nil
}

// Submit stores the image (if any), then the object and its report in one
// transaction. For found reports a repeat of the same (user, name, color,
// category) is rejected with common.ErrorDuplicate. A failed transaction
// removes the stored image again.
func (s *ReportService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if in.UserID == "" {
		return nil, common.NewUserError(common.ErrorUnauthorized, MsgLoginRequired)
	}
	if in.Kind != models.ReportLost && in.Kind != models.ReportFound {
		return nil, common.NewUserError(common.ErrorValidation, MsgInvalidReportKind)
	}

	fields, err := in.normalize()
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{}

	var imageName string
	if in.Image != nil && in.Image.Filename != "" {
		imageName = storage.UniqueName(in.Image.Filename)
		if err := s.store.Save(ctx, imageName, in.Image.ContentType, in.Image.Body); err != nil {
			return nil, fmt.Errorf("error saving image: %w", err)
		}
		result.ImagePath = storage.PublicPath(imageName)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		objectsRepo := s.repomanager.Objects(tx)
		reportsRepo := s.repomanager.Reports(tx)
		catalogsRepo := s.repomanager.Catalogs(tx)

		if in.Kind == models.ReportFound {
			dup, err := reportsRepo.FoundDuplicateExists(ctx, in.UserID, in.Name, in.Color, in.Category)
			if err != nil {
				return fmt.Errorf("error checking duplicates: %w", err)
			}
			if dup {
				return common.NewUserError(common.ErrorDuplicate, MsgDuplicateFound)
			}
		}

		if err := catalogsRepo.Ensure(ctx, models.CatalogCategories, in.Category); err != nil {
			return fmt.Errorf("error ensuring category: %w", err)
		}
		if err := catalogsRepo.Ensure(ctx, models.CatalogStates, in.State); err != nil {
			return fmt.Errorf("error ensuring state: %w", err)
		}

		obj := &models.Object{
			Name:     in.Name,
			Color:    in.Color,
			State:    in.State,
			Place:    in.Place,
			Category: in.Category,
			Image:    result.ImagePath,
		}
		objectID, err := s.withFreshID(func(id string) error {
			obj.ID = id
			return objectsRepo.Create(ctx, obj)
		})
		if err != nil {
			return fmt.Errorf("error creating object: %w", err)
		}

		report := &models.Report{
			Kind:        in.Kind,
			Date:        fields.date,
			Observation: in.Observation,
			ObjectID:    objectID,
			UserID:      in.UserID,
			FileNumber:  fields.fileNumber,
			Category:    in.Category,
		}
		reportID, err := s.withFreshID(func(id string) error {
			report.ID = id
			return reportsRepo.Create(ctx, in.Kind, report)
		})
		if err != nil {
			return fmt.Errorf("error creating report: %w", err)
		}

		result.ObjectID = objectID
		result.ReportID = reportID
		return nil
	})
	if err != nil {
		s.discardImage(ctx, imageName)
		return nil, err
	}

	s.log.Info(ctx, "report stored",
		"kind", in.Kind, "user_id", in.UserID, "object_id", result.ObjectID, "report_id", result.ReportID)
	return result, nil
}

// withFreshID calls create with newly drawn identifiers until one is not
// taken.
func (s *ReportService) withFreshID(create func(id string) error) (string, error) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}

		err = create(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, common.ErrorConflict) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: no free identifier after %d attempts", common.ErrorInternal, maxIDAttempts)
}

func (s *ReportService) discardImage(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.store.Delete(ctx, name); err != nil {
		s.log.Warn(ctx, "orphan image left behind", "image", name, "error", err)
	}
}

// ListMine returns all reports userID filed.
func (s *ReportService) ListMine(ctx context.Context, userID string) ([]models.UserReport, error) {
	if userID == "" {
		return nil, common.NewUserError(common.ErrorUnauthorized, MsgLoginRequired)
	}

	result, err := s.repomanager.Reports(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	return result, nil
}
