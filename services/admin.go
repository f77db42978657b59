package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"frozo-api/apperrors"
	"frozo-api/models"

	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = apperrors.New(apperrors.CodeUnauthorized, "invalid email or password")

type RegisterAdminInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminService struct {
	admins AdminStore
	tokens TokenIssuer
	cost   int
	now    func() time.Time
}

func NewAdminService(admins AdminStore, tokens TokenIssuer) *AdminService {
	return &AdminService{
		admins: admins,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Login checks the password and returns a signed token. Unknown emails and wrong
// passwords produce the same error.
func (s *AdminService) Login(ctx context.Context, in LoginInput) (string, *models.Admin, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", nil, apperrors.Validation("email and password are required")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return "", nil, errBadCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(in.Password)); err != nil {
		return "", nil, errBadCredentials
	}

	token, err := s.tokens.Generate(admin.Email, admin.Role)
	if err != nil {
		return "", nil, apperrors.Internal(err, "error generating token")
	}

	now := s.now()
	if err := s.admins.TouchLastLogin(ctx, admin.ID); err == nil {
		admin.LastLogin = &now
	}
	return token, admin, nil
}

func (s *AdminService) Register(ctx context.Context, in RegisterAdminInput) (*models.Admin, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, apperrors.Validation("name is required")
	case email == "":
		return nil, apperrors.Validation("email is required")
	case len(in.Password) < 8:
		return nil, apperrors.Validation("password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.Validation("password is too long")
		}
		return nil, apperrors.Internal(err, "error hashing password")
	}

	admin := &models.Admin{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		CreatedAt: s.now(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) Profile(ctx context.Context, email string) (*models.Admin, error) {
	admin, err := s.admins.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// EnsureBootstrapAdmin creates the configured admin account when it does not exist yet.
// It reports whether an account was created.
func (s *AdminService) EnsureBootstrapAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	_, err := s.admins.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		return false, nil
	case !apperrors.IsCode(err, apperrors.CodeNotFound):
		return false, err
	}

	_, err = s.Register(ctx, RegisterAdminInput{Name: name, Email: email, Password: password})
	if apperrors.IsCode(err, apperrors.CodeConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
