package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayfront/hotel-console/internal/apperrors"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/domain/user"
	"github.com/stayfront/hotel-console/internal/store"
)

func newAuthFixture(t *testing.T) (*AuthService, *store.Stores) {
	t.Helper()
	stores := store.NewMemoryStores()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(stores, tokens, zap.NewNop()), stores
}

func seedAccount(t *testing.T, stores *store.Stores, id, email, password string, role user.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = stores.Users.Create(context.Background(), user.User{
		ID: id, Email: email, Name: "Test User", Role: role, PasswordHash: string(hash),
	})
	require.NoError(t, err)
}

func TestSignIn(t *testing.T) {
	svc, stores := newAuthFixture(t)
	ctx := context.Background()
	seedAccount(t, stores, "1", "admin@hotel.test", "secret123", user.RoleAdmin)

	t.Run("valid credentials", func(t *testing.T) {
		session, err := svc.SignIn(ctx, SignInRequest{Email: "admin@hotel.test", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, user.RoleAdmin, session.User.Role)
		assert.Contains(t, session.User.Permissions, "users")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.SignIn(ctx, SignInRequest{Email: "admin@hotel.test", Password: "wrong"})
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.SignIn(ctx, SignInRequest{Email: "nobody@hotel.test", Password: "secret123"})
		assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.SignIn(ctx, SignInRequest{})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestSignIn_StampsProfileLastLogin(t *testing.T) {
	svc, stores := newAuthFixture(t)
	ctx := context.Background()
	seedAccount(t, stores, "1", "staff@hotel.test", "secret123", user.RoleStaff)

	_, err := stores.Profiles.Create(ctx, user.Profile{
		ID: "1", Email: "staff@hotel.test", Name: "Test User", Role: user.RoleStaff,
		Status: user.AccountActive, LastLogin: "Never", Permissions: user.RoleStaff.Permissions(),
	})
	require.NoError(t, err)

	stamp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	_, err = svc.SignIn(ctx, SignInRequest{Email: "staff@hotel.test", Password: "secret123"})
	require.NoError(t, err)

	p, err := stores.Profiles.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, stamp.Format(time.RFC3339), p.LastLogin)
}

func TestSignUp(t *testing.T) {
	svc, stores := newAuthFixture(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpRequest{
		Name: "New Guest", Email: "new@hotel.test", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleGuest, session.User.Role, "self-registered accounts are guests")
	assert.NotEmpty(t, session.Token)

	// Credentials stored hashed, never plaintext.
	u, err := stores.Users.Get(ctx, session.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))

	// A parallel profile record was created.
	profiles, err := stores.Profiles.Find(ctx, map[string]string{"email": "new@hotel.test"})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, user.AccountActive, profiles[0].Status)
	assert.Equal(t, "Never", profiles[0].LastLogin)

	// Duplicate email is a conflict.
	_, err = svc.SignUp(ctx, SignUpRequest{Name: "Dup", Email: "new@hotel.test", Password: "x1234567"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestChangePassword(t *testing.T) {
	svc, stores := newAuthFixture(t)
	ctx := context.Background()
	seedAccount(t, stores, "1", "staff@hotel.test", "oldpass", user.RoleStaff)

	err := svc.ChangePassword(ctx, "1", ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	require.NoError(t, svc.ChangePassword(ctx, "1", ChangePasswordRequest{CurrentPassword: "oldpass", NewPassword: "newpass"}))

	_, err = svc.SignIn(ctx, SignInRequest{Email: "staff@hotel.test", Password: "newpass"})
	assert.NoError(t, err)
	_, err = svc.SignIn(ctx, SignInRequest{Email: "staff@hotel.test", Password: "oldpass"})
	assert.Error(t, err)
}

func TestUpdateEmail(t *testing.T) {
	svc, stores := newAuthFixture(t)
	ctx := context.Background()
	seedAccount(t, stores, "1", "old@hotel.test", "secret123", user.RoleStaff)
	seedAccount(t, stores, "2", "taken@hotel.test", "secret123", user.RoleStaff)

	_, err := svc.UpdateEmail(ctx, "1", "taken@hotel.test", "secret123")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = svc.UpdateEmail(ctx, "1", "fresh@hotel.test", "wrong")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	updated, err := svc.UpdateEmail(ctx, "1", "fresh@hotel.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "fresh@hotel.test", updated.Email)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	signed, err := tokens.IssueToken(user.User{ID: "7", Email: "a@b.c", Role: user.RoleStaff})
	require.NoError(t, err)

	claims, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, user.RoleStaff, claims.Role)

	_, err = tokens.ParseToken(signed + "tampered")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	other := auth.NewTokenManager("different-secret", time.Hour)
	_, err = other.ParseToken(signed)
	assert.Error(t, err)
}
