package service

import (
	"context"
	"testing"
	"time"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*fakeUnitOfWork, IAuthService) {
	uow := newFakeUnitOfWork()
	svc := NewAuthService(&fakeFactory{uow: uow}, "test-secret", time.Hour)
	return uow, svc
}

func TestRegisterCommitsNewUser(t *testing.T) {
	uow, svc := newAuthFixture()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	require.NotNil(t, uow.users.users[resp.Id])

	// The check-then-insert runs in one transaction.
	assert.Equal(t, 1, uow.begins)
	assert.Equal(t, 1, uow.commits)
	assert.Equal(t, 0, uow.rollbacks)
}

func TestRegisterConflictRollsBack(t *testing.T) {
	uow, svc := newAuthFixture()
	seedUser(uow, "alice")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cret-pass",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	assert.Equal(t, 1, uow.begins)
	assert.Equal(t, 0, uow.commits)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	uow, svc := newAuthFixture()
	alice := seedUser(uow, "alice")
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	alice.PasswordHash = string(hash)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "alice",
		Password:   "wrong-pass",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestLoginByEmailIssuesToken(t *testing.T) {
	uow, svc := newAuthFixture()
	alice := seedUser(uow, "alice")
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	alice.PasswordHash = string(hash)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "Alice@example.com",
		Password:   "right-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.Id, resp.Id)
	assert.NotEmpty(t, resp.Token)
}
