package controllers

import (
	"context"
	"net/http"
	"strconv"

	"frozo-api/apperrors"
	"frozo-api/logger"
	"frozo-api/models"
	"frozo-api/responses"
	"frozo-api/services"
	"frozo-api/validators"

	"github.com/gorilla/mux"
)

type ContactService interface {
	Submit(ctx context.Context, in services.ContactInput) (*models.ContactMessage, error)
	List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (*models.ContactMessage, error)
}

type ContactController struct {
	Contacts ContactService
	Log      *logger.Logger
}

func NewContactController(contacts ContactService, log *logger.Logger) *ContactController {
	return &ContactController{Contacts: contacts, Log: log}
}

func (cc *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	if err := validators.DecodeJSONBody(w, r, &in); err != nil {
		responses.WriteError(r.Context(), cc.Log, w, err)
		return
	}
	if _, err := cc.Contacts.Submit(r.Context(), in); err != nil {
		responses.WriteError(r.Context(), cc.Log, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, responses.Payload{
		"message": "Thank you for contacting us. We will get back to you soon.",
	})
}

// ListMessages returns contact messages for admins; ?unread=true limits to unread ones.
func (cc *ContactController) ListMessages(w http.ResponseWriter, r *http.Request) {
	unreadOnly := false
	if raw := r.URL.Query().Get("unread"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			responses.WriteError(r.Context(), cc.Log, w, apperrors.Validation("unread must be true or false"))
			return
		}
		unreadOnly = v
	}

	messages, err := cc.Contacts.List(r.Context(), unreadOnly)
	if err != nil {
		responses.WriteError(r.Context(), cc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"count": len(messages), "messages": messages})
}

func (cc *ContactController) MarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := cc.Contacts.MarkRead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		responses.WriteError(r.Context(), cc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Message marked as read", "contact": msg})
}
