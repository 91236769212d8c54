package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/apperrors"
	"github.com/stayfront/hotel-console/internal/domain/user"
	"github.com/stayfront/hotel-console/internal/store"
)

// CreateProfileRequest is the admin user creation form.
type CreateProfileRequest struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
	Phone string    `json:"phone,omitempty"`
}

// UserService manages the admin-facing profile collection. Profiles carry
// role, status and permissions; the credentials collection stays untouched
// except when a profile is deleted.
type UserService struct {
	stores *store.Stores
	logger *zap.Logger
}

// NewUserService creates the user management service.
func NewUserService(stores *store.Stores, logger *zap.Logger) *UserService {
	return &UserService{stores: stores, logger: logger}
}

// List returns all profiles.
func (s *UserService) List(ctx context.Context) ([]user.Profile, error) {
	profiles, err := s.stores.Profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Get retrieves a single profile.
func (s *UserService) Get(ctx context.Context, id string) (user.Profile, error) {
	return s.stores.Profiles.Get(ctx, id)
}

// Create adds a profile. The permissions are derived from the role; new
// profiles start active and have never signed in.
func (s *UserService) Create(ctx context.Context, req CreateProfileRequest) (user.Profile, error) {
	if req.Name == "" || req.Email == "" {
		return user.Profile{}, apperrors.NewValidationError("name and email are required")
	}
	if !req.Role.IsValid() {
		return user.Profile{}, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", req.Role))
	}

	existing, err := s.stores.Profiles.Find(ctx, map[string]string{"email": req.Email})
	if err != nil {
		return user.Profile{}, fmt.Errorf("failed to look up profile: %w", err)
	}
	if len(existing) > 0 {
		return user.Profile{}, apperrors.NewConflictError("a profile with this email already exists")
	}

	profiles, err := s.stores.Profiles.List(ctx)
	if err != nil {
		return user.Profile{}, fmt.Errorf("failed to list profiles: %w", err)
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	created, err := s.stores.Profiles.Create(ctx, user.Profile{
		ID:          store.NextID(ids),
		Email:       req.Email,
		Name:        req.Name,
		Role:        req.Role,
		Phone:       req.Phone,
		Status:      user.AccountActive,
		LastLogin:   "Never",
		Permissions: req.Role.Permissions(),
	})
	if err != nil {
		return user.Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return created, nil
}

// Update applies a partial edit to a profile. A role change rederives the
// permissions.
func (s *UserService) Update(ctx context.Context, id string, patch user.ProfilePatch) (user.Profile, error) {
	if patch.Role != nil {
		if !patch.Role.IsValid() {
			return user.Profile{}, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", *patch.Role))
		}
		perms := patch.Role.Permissions()
		patch.Permissions = &perms
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return user.Profile{}, apperrors.NewValidationError(fmt.Sprintf("invalid account status: %s", *patch.Status))
	}

	updated, err := s.stores.Profiles.Patch(ctx, id, patch)
	if err != nil {
		return user.Profile{}, err
	}
	return updated, nil
}

// SetStatus activates or deactivates a profile.
func (s *UserService) SetStatus(ctx context.Context, id string, status user.AccountStatus) (user.Profile, error) {
	if !status.IsValid() {
		return user.Profile{}, apperrors.NewValidationError(fmt.Sprintf("invalid account status: %s", status))
	}
	return s.Update(ctx, id, user.ProfilePatch{Status: &status})
}

// Delete removes a profile and, when a credentials record shares its email,
// that record too. The credentials delete is best-effort; an orphaned
// credentials record still cannot reach admin features without a profile.
func (s *UserService) Delete(ctx context.Context, id string) error {
	p, err := s.stores.Profiles.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.stores.Profiles.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	creds, err := s.stores.Users.Find(ctx, map[string]string{"email": p.Email})
	if err == nil && len(creds) > 0 {
		if err := s.stores.Users.Delete(ctx, creds[0].ID); err != nil {
			s.logger.Error("failed to delete credentials for removed profile",
				zap.String("email", p.Email),
				zap.Error(err),
			)
		}
	}
	return nil
}
