// internal/app/features/accounts/profile.go
package accounts

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	userstore "github.com/daehokim/soluhub/internal/app/store/users"
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServeProfile returns the caller's own account record.
// GET /accounts/profile
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Account not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// HandleUpdateProfile lets any signed-in user change their own name and
// email. Role and active status stay admin-only.
// PATCH /accounts/profile
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode profile failed", err, "Invalid request body.")
		return
	}

	name := normalize.Name(req.Name)
	email := normalize.Email(req.Email)
	if name == "" || email == "" {
		uierrors.RenderBadRequest(w, "Name and email are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	taken, err := h.Users.EmailExistsForOther(ctx, email, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check email failed", err, "A database error occurred.")
		return
	}
	if taken {
		uierrors.RenderBadRequest(w, "An account with that email already exists.")
		return
	}

	err = h.Users.UpdateProfile(ctx, id, name, email)
	if err == userstore.ErrDuplicateEmail {
		uierrors.RenderBadRequest(w, "An account with that email already exists.")
		return
	}
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Account not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update profile failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("profile updated",
		zap.String("user_id", id.Hex()),
		zap.String("email", email))

	w.WriteHeader(http.StatusNoContent)
}

// sessionUserID resolves the caller's ObjectID from the session.
func (h *Handler) sessionUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "Sign in to manage your profile.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		uierrors.RenderBadRequest(w, "Bad account id.")
		return primitive.NilObjectID, false
	}
	return id, true
}
