package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/storefront-service/internal/config"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

func newTestAuthService(repo *mockUserRepo) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 240,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	return NewAuthService(cfg, AuthDependencies{UserRepo: repo})
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	profile, err := svc.Register(context.Background(), "Jamie", "jamie@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, profile.ID)

	stored, err := repo.GetByEmail(context.Background(), "jamie@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "Jamie", "jamie@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other", "Jamie@Example.com", "another-pass")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}

func TestRegister_MissingFieldsAreRejected(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	cases := []struct {
		name, email, password string
	}{
		{"", "jamie@example.com", "pass"},
		{"Jamie", "", "pass"},
		{"Jamie", "jamie@example.com", ""},
		{"Jamie", "not-an-email", "pass"},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.name, tc.email, tc.password)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), "Jamie", "jamie@example.com", "s3cret-pass")
	require.NoError(t, err)

	profile, token, exp, err := svc.Login(context.Background(), "jamie@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.Equal(t, registered.ID, profile.ID)
	assert.Equal(t, "jamie@example.com", profile.Email)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLogin_UnknownEmailAndWrongPasswordLookIdentical(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "Jamie", "jamie@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, _, wrongErr := svc.Login(context.Background(), "jamie@example.com", "wrong-pass")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	unknownDomain := apperrors.ToDomainError(unknownErr)
	wrongDomain := apperrors.ToDomainError(wrongErr)
	assert.Equal(t, http.StatusUnauthorized, unknownDomain.HTTPStatus)
	assert.Equal(t, unknownDomain.HTTPStatus, wrongDomain.HTTPStatus)
	assert.Equal(t, unknownDomain.Message, wrongDomain.Message)
}

func TestProfile_OmitsPasswordHash(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), "Jamie", "jamie@example.com", "s3cret-pass")
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, profile.ID)
	assert.Equal(t, "Jamie", profile.Name)
	assert.Equal(t, "jamie@example.com", profile.Email)
}

func TestProfile_UnknownUserIsNotFound(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Profile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}
