package controllers

import (
	"context"
	"net/http"

	"frozo-api/apperrors"
	"frozo-api/logger"
	"frozo-api/middleware"
	"frozo-api/models"
	"frozo-api/responses"
	"frozo-api/services"
	"frozo-api/validators"
)

type AdminService interface {
	Login(ctx context.Context, in services.LoginInput) (string, *models.Admin, error)
	Register(ctx context.Context, in services.RegisterAdminInput) (*models.Admin, error)
	Profile(ctx context.Context, email string) (*models.Admin, error)
}

// AdminController handles admin account requests
type AdminController struct {
	Admins AdminService
	Log    *logger.Logger
}

func NewAdminController(admins AdminService, log *logger.Logger) *AdminController {
	return &AdminController{Admins: admins, Log: log}
}

// Login handles admin login and returns a bearer token
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := validators.DecodeJSONBody(w, r, &in); err != nil {
		responses.WriteError(r.Context(), ac.Log, w, err)
		return
	}

	token, admin, err := ac.Admins.Login(r.Context(), in)
	if err != nil {
		responses.WriteError(r.Context(), ac.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"token": token, "admin": admin})
}

// Register creates another admin account. Only existing admins may call it.
func (ac *AdminController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterAdminInput
	if err := validators.DecodeJSONBody(w, r, &in); err != nil {
		responses.WriteError(r.Context(), ac.Log, w, err)
		return
	}

	admin, err := ac.Admins.Register(r.Context(), in)
	if err != nil {
		responses.WriteError(r.Context(), ac.Log, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, responses.Payload{"message": "Admin registered", "admin": admin})
}

// GetProfile retrieves the authenticated admin's profile
func (ac *AdminController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), ac.Log, w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	admin, err := ac.Admins.Profile(r.Context(), claims.Email)
	if err != nil {
		responses.WriteError(r.Context(), ac.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"admin": admin})
}
