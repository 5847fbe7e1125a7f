package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/cryptox"
	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/repositories/repomanager"
)

// Client-facing messages of the identity flows.
const (
	MsgCredentialsRequired = "Usuario y contraseña obligatorios"
	MsgUserIDHasSpaces     = "El Usuario no puede tener espacios"
	MsgPasswordMismatch    = "Las contraseñas no coinciden"
	MsgUserExists          = "El usuario ya existe"
	MsgLoginFieldsRequired = "Debes completar todos los campos"
	MsgUserNotRegistered   = "El usuario no está registrado"
	MsgWrongPassword       = "Contraseña incorrecta"
	MsgUserNotFound        = "Usuario no encontrado"
	MsgNoRecoveryPending   = "No hay usuario en recuperación"
	MsgWrongAnswers        = "Respuestas incorrectas"
	MsgNewPasswordRequired = "La nueva contraseña es obligatoria"
)

// hashSecret is a seam for tests that need hashing to fail.
var hashSecret = cryptox.HashSecret

type RegisterInput struct {
	UserID         string
	Name           string
	Password       string
	PasswordRepeat string
	Question1      string
	Answer1        string
	Question2      string
	Answer2        string
}

// RecoveryQuestions are the two questions shown to a user resetting a password.
type RecoveryQuestions struct {
	Question1 string
	Question2 string
}

// IdentityService registers users, checks credentials and runs the
// question-based password reset.
type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *IdentityService {
	return &IdentityService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "identity"),
	}
}

// Register creates an account and returns its ID. The password and both
// answers (lower-cased) are stored as salted hashes.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if in.UserID == "" || in.Password == "" {
		return "", common.NewUserError(common.ErrorValidation, MsgCredentialsRequired)
	}
	if strings.ContainsFunc(in.UserID, unicode.IsSpace) {
		return "", common.NewUserError(common.ErrorValidation, MsgUserIDHasSpaces)
	}
	if in.Password != in.PasswordRepeat {
		return "", common.NewUserError(common.ErrorValidation, MsgPasswordMismatch)
	}

	user := &models.User{
		ID:        in.UserID,
		Name:      in.Name,
		Question1: in.Question1,
		Question2: in.Question2,
	}

	var err error
	if user.PasswordHash, err = hashSecret(in.Password); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if user.Answer1Hash, err = hashSecret(cryptox.NormalizeAnswer(in.Answer1)); err != nil {
		return "", fmt.Errorf("hash answer: %w", err)
	}
	if user.Answer2Hash, err = hashSecret(cryptox.NormalizeAnswer(in.Answer2)); err != nil {
		return "", fmt.Errorf("hash answer: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return "", common.NewUserError(common.ErrorConflict, MsgUserExists)
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user.ID, nil
}

// Login checks userID and password.
func (s *IdentityService) Login(ctx context.Context, userID, password string) error {
	if userID == "" || password == "" {
		return common.NewUserError(common.ErrorValidation, MsgLoginFieldsRequired)
	}

	user, err := s.getUser(ctx, userID, MsgUserNotRegistered)
	if err != nil {
		return err
	}

	ok, err := cryptox.VerifySecret(user.PasswordHash, password)
	if err != nil {
		return fmt.Errorf("verify password of %s: %w", userID, err)
	}
	if !ok {
		return common.NewUserError(common.ErrorUnauthorized, MsgWrongPassword)
	}
	return nil
}

// BeginRecovery returns the recovery questions of userID. The caller keeps
// userID as the session's recovery target.
func (s *IdentityService) BeginRecovery(ctx context.Context, userID string) (*RecoveryQuestions, error) {
	if userID == "" {
		return nil, common.NewUserError(common.ErrorNotFound, MsgUserNotFound)
	}

	user, err := s.getUser(ctx, userID, MsgUserNotFound)
	if err != nil {
		return nil, err
	}

	return &RecoveryQuestions{Question1: user.Question1, Question2: user.Question2}, nil
}

// CompleteRecovery replaces the password of target when both answers
// match, ignoring letter case.
func (s *IdentityService) CompleteRecovery(ctx context.Context, target, answer1, answer2, newPassword string) error {
	if target == "" {
		return common.NewUserError(common.ErrorState, MsgNoRecoveryPending)
	}
	if newPassword == "" {
		return common.NewUserError(common.ErrorValidation, MsgNewPasswordRequired)
	}

	user, err := s.getUser(ctx, target, MsgUserNotFound)
	if err != nil {
		return err
	}

	ok1, err := cryptox.VerifySecret(user.Answer1Hash, cryptox.NormalizeAnswer(answer1))
	if err != nil {
		return fmt.Errorf("verify answer of %s: %w", target, err)
	}
	ok2, err := cryptox.VerifySecret(user.Answer2Hash, cryptox.NormalizeAnswer(answer2))
	if err != nil {
		return fmt.Errorf("verify answer of %s: %w", target, err)
	}
	if !ok1 || !ok2 {
		return common.NewUserError(common.ErrorUnauthorized, MsgWrongAnswers)
	}

	hash, err := hashSecret(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repomanager.Users(s.db).UpdatePassword(ctx, target, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewUserError(common.ErrorNotFound, MsgUserNotFound)
		}
		return fmt.Errorf("error updating password: %w", err)
	}

	s.log.Info(ctx, "password reset", "user_id", target)
	return nil
}

func (s *IdentityService) getUser(ctx context.Context, userID, notFoundMsg string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewUserError(common.ErrorNotFound, notFoundMsg)
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}
