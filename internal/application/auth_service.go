package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayfront/hotel-console/internal/apperrors"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/domain/user"
	"github.com/stayfront/hotel-console/internal/store"
)

// SignInRequest is the sign-in form.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the registration form. Self-registered accounts are
// always created with the guest role.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// ChangePasswordRequest carries a password change for the signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Session is the result of a successful sign-in.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser is the signed-in user without the credential hash.
type SessionUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        user.Role `json:"role"`
	Permissions []string  `json:"permissions"`
}

// AuthService handles sign-in, registration and credential changes against
// the users collection, mirroring sign-in activity onto the profile
// collection.
type AuthService struct {
	stores *store.Stores
	tokens *auth.TokenManager
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService creates the auth service.
func NewAuthService(stores *store.Stores, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{stores: stores, tokens: tokens, logger: logger, now: time.Now}
}

// SignIn verifies the credentials and issues a session token. The matching
// profile's last-login stamp is updated best-effort.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (Session, error) {
	if req.Email == "" || req.Password == "" {
		return Session{}, apperrors.NewValidationError("email and password are required")
	}

	matches, err := s.stores.Users.Find(ctx, map[string]string{"email": req.Email})
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(matches) == 0 {
		return Session{}, apperrors.NewUnauthorizedError("invalid email or password")
	}
	u := matches[0]

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return Session{}, apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.IssueToken(u)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.stampLastLogin(ctx, u.Email)

	return Session{
		Token: token,
		User: SessionUser{
			ID:          u.ID,
			Email:       u.Email,
			Name:        u.Name,
			Role:        u.Role,
			Permissions: u.Role.Permissions(),
		},
	}, nil
}

// SignUp registers a new guest account. The email must be unused; the
// credentials and profile records are created in parallel.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (Session, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return Session{}, apperrors.NewValidationError("name, email and password are required")
	}

	existing, err := s.stores.Users.Find(ctx, map[string]string{"email": req.Email})
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(existing) > 0 {
		return Session{}, apperrors.NewConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	ids, err := s.userIDs(ctx)
	if err != nil {
		return Session{}, err
	}

	u := user.User{
		ID:           store.NextID(ids),
		Email:        req.Email,
		Name:         req.Name,
		Role:         user.RoleGuest,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	created, err := s.stores.Users.Create(ctx, u)
	if err != nil {
		return Session{}, fmt.Errorf("failed to create account: %w", err)
	}

	// The profile record is best-effort: a failure here leaves a
	// credentials-only account that the admin console can backfill.
	if err := s.createProfile(ctx, created); err != nil {
		s.logger.Error("failed to create profile for new account",
			zap.String("email", created.Email),
			zap.Error(err),
		)
	}

	token, err := s.tokens.IssueToken(created)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return Session{
		Token: token,
		User: SessionUser{
			ID:          created.ID,
			Email:       created.Email,
			Name:        created.Name,
			Role:        created.Role,
			Permissions: created.Role.Permissions(),
		},
	}, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return apperrors.NewValidationError("new password is required")
	}

	u, err := s.stores.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperrors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	newHash := string(hash)
	if _, err := s.stores.Users.Patch(ctx, userID, user.Patch{PasswordHash: &newHash}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateEmail changes the account email on both the credentials and profile
// records. The new email must be unused.
func (s *AuthService) UpdateEmail(ctx context.Context, userID, newEmail, password string) (user.User, error) {
	if newEmail == "" {
		return user.User{}, apperrors.NewValidationError("email is required")
	}

	u, err := s.stores.Users.Get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, apperrors.NewUnauthorizedError("password is incorrect")
	}

	taken, err := s.stores.Users.Find(ctx, map[string]string{"email": newEmail})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	for _, other := range taken {
		if other.ID != userID {
			return user.User{}, apperrors.NewConflictError("an account with this email already exists")
		}
	}

	updated, err := s.stores.Users.Patch(ctx, userID, user.Patch{Email: &newEmail})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to update email: %w", err)
	}

	profiles, err := s.stores.Profiles.Find(ctx, map[string]string{"email": u.Email})
	if err == nil && len(profiles) > 0 {
		if _, err := s.stores.Profiles.Patch(ctx, profiles[0].ID, user.ProfilePatch{Email: &newEmail}); err != nil {
			s.logger.Error("failed to update profile email",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}
	return updated, nil
}

func (s *AuthService) createProfile(ctx context.Context, u user.User) error {
	profiles, err := s.stores.Profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	_, err = s.stores.Profiles.Create(ctx, user.Profile{
		ID:          store.NextID(ids),
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Phone:       u.Phone,
		Status:      user.AccountActive,
		LastLogin:   "Never",
		Permissions: u.Role.Permissions(),
	})
	return err
}

// stampLastLogin records the sign-in time on the matching profile.
// Best-effort: sign-in never fails because the profile write did.
func (s *AuthService) stampLastLogin(ctx context.Context, email string) {
	profiles, err := s.stores.Profiles.Find(ctx, map[string]string{"email": email})
	if err != nil || len(profiles) == 0 {
		return
	}
	stamp := s.now().Format(time.RFC3339)
	if _, err := s.stores.Profiles.Patch(ctx, profiles[0].ID, user.ProfilePatch{LastLogin: &stamp}); err != nil {
		s.logger.Debug("failed to stamp last login",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}

func (s *AuthService) userIDs(ctx context.Context) ([]string, error) {
	users, err := s.stores.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
