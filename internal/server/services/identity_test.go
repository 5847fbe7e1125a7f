package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/cryptox"
	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityService(t *testing.T) (*IdentityService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	return NewIdentityService(db, rm, logging.Nop()), rm
}

func anaInput() RegisterInput {
	return RegisterInput{
		UserID: "ana1", Name: "Ana",
		Password: "Secret123", PasswordRepeat: "Secret123",
		Question1: "Pet?", Answer1: "Rex",
		Question2: "City?", Answer2: "Lima",
	}
}

func requireUserError(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	var ue *common.UserError
	require.True(t, errors.As(err, &ue), "expected *common.UserError, got %T", err)
	assert.Equal(t, msg, ue.Message)
}

func TestRegister_ThenLogin(t *testing.T) {
	s, rm := newIdentityService(t)
	ctx := context.Background()

	id, err := s.Register(ctx, anaInput())
	require.NoError(t, err)
	assert.Equal(t, "ana1", id)

	stored := rm.u.users["ana1"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Secret123", stored.PasswordHash)
	assert.NotContains(t, stored.Answer1Hash, "rex")

	ok, err := cryptox.VerifySecret(stored.Answer1Hash, "rex")
	require.NoError(t, err)
	assert.True(t, ok, "answers are stored lower-cased")

	require.NoError(t, s.Login(ctx, "ana1", "Secret123"))
	requireUserError(t, s.Login(ctx, "ana1", "wrong"), common.ErrorUnauthorized, MsgWrongPassword)
}

func TestRegister_Validation(t *testing.T) {
	s, rm := newIdentityService(t)

	tests := []struct {
		name string
		edit func(*RegisterInput)
		msg  string
	}{
		{"empty id", func(in *RegisterInput) { in.UserID = "" }, MsgCredentialsRequired},
		{"empty password", func(in *RegisterInput) { in.Password = "" }, MsgCredentialsRequired},
		{"space in id", func(in *RegisterInput) { in.UserID = "ana 1" }, MsgUserIDHasSpaces},
		{"tab in id", func(in *RegisterInput) { in.UserID = "ana\t1" }, MsgUserIDHasSpaces},
		{"mismatch", func(in *RegisterInput) { in.PasswordRepeat = "Secret124" }, MsgPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := anaInput()
			tt.edit(&in)
			_, err := s.Register(context.Background(), in)
			requireUserError(t, err, common.ErrorValidation, tt.msg)
		})
	}
	assert.Empty(t, rm.u.users)
}

func TestRegister_TwiceIsConflict(t *testing.T) {
	s, _ := newIdentityService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, anaInput())
	require.NoError(t, err)

	_, err = s.Register(ctx, anaInput())
	requireUserError(t, err, common.ErrorConflict, MsgUserExists)
}

func TestRegister_HashFailure(t *testing.T) {
	s, _ := newIdentityService(t)

	orig := hashSecret
	hashSecret = func(string) (string, error) { return "", errors.New("no entropy") }
	defer func() { hashSecret = orig }()

	_, err := s.Register(context.Background(), anaInput())
	assert.ErrorContains(t, err, "no entropy")
	var ue *common.UserError
	assert.False(t, errors.As(err, &ue))
}

func TestLogin_Errors(t *testing.T) {
	s, rm := newIdentityService(t)
	ctx := context.Background()

	requireUserError(t, s.Login(ctx, "", "x"), common.ErrorValidation, MsgLoginFieldsRequired)
	requireUserError(t, s.Login(ctx, "nobody", "x"), common.ErrorNotFound, MsgUserNotRegistered)

	rm.u.getErr = errors.New("db error: connection refused")
	err := s.Login(ctx, "ana1", "x")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestRecovery_CaseInsensitiveAnswers(t *testing.T) {
	s, _ := newIdentityService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, anaInput())
	require.NoError(t, err)

	q, err := s.BeginRecovery(ctx, "ana1")
	require.NoError(t, err)
	assert.Equal(t, &RecoveryQuestions{Question1: "Pet?", Question2: "City?"}, q)

	require.NoError(t, s.CompleteRecovery(ctx, "ana1", "rex", "LIMA", "NewPass1"))

	requireUserError(t, s.Login(ctx, "ana1", "Secret123"), common.ErrorUnauthorized, MsgWrongPassword)
	require.NoError(t, s.Login(ctx, "ana1", "NewPass1"))
}

func TestRecovery_WrongAnswersKeepPassword(t *testing.T) {
	s, _ := newIdentityService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, anaInput())
	require.NoError(t, err)

	err = s.CompleteRecovery(ctx, "ana1", "Rex", "Cusco", "NewPass1")
	requireUserError(t, err, common.ErrorUnauthorized, MsgWrongAnswers)

	require.NoError(t, s.Login(ctx, "ana1", "Secret123"))
}

func TestRecovery_Errors(t *testing.T) {
	s, _ := newIdentityService(t)
	ctx := context.Background()

	_, err := s.BeginRecovery(ctx, "nobody")
	requireUserError(t, err, common.ErrorNotFound, MsgUserNotFound)

	err = s.CompleteRecovery(ctx, "", "a", "b", "NewPass1")
	requireUserError(t, err, common.ErrorState, MsgNoRecoveryPending)

	err = s.CompleteRecovery(ctx, "ana1", "a", "b", "")
	requireUserError(t, err, common.ErrorValidation, MsgNewPasswordRequired)

	err = s.CompleteRecovery(ctx, "vanished", "a", "b", "NewPass1")
	requireUserError(t, err, common.ErrorNotFound, MsgUserNotFound)
}
