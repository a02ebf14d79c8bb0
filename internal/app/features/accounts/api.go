// internal/app/features/accounts/api.go
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
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type activeRequest struct {
	Active bool `json:"active"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// minPasswordLen keeps new credentials out of trivially guessable range.
const minPasswordLen = 8

// HandleList returns all accounts, sorted by folded name.
// GET /accounts
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(users)
}

// HandleCreate adds a new account.
// POST /accounts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode account failed", err, "Invalid request body.")
		return
	}

	name := normalize.Name(req.Name)
	email := normalize.Email(req.Email)
	if name == "" || email == "" {
		uierrors.RenderBadRequest(w, "Name and email are required.")
		return
	}
	if len(req.Password) < minPasswordLen {
		uierrors.RenderBadRequest(w, "Password must be at least 8 characters.")
		return
	}
	role := normalize.Role(req.Role)
	if role != "" && !models.ValidRole(role) {
		uierrors.RenderBadRequest(w, "Unknown role.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Could not create the account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Name:           name,
		Email:          email,
		HashedPassword: string(hashed),
		Role:           role,
	})
	if err == userstore.ErrDuplicateEmail {
		uierrors.RenderBadRequest(w, "An account with that email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("account created",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email),
		zap.String("role", created.Role))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleUpdateRole changes an account's role.
// PATCH /accounts/{id}/role
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode role failed", err, "Invalid request body.")
		return
	}
	role := normalize.Role(req.Role)
	if !models.ValidRole(role) {
		uierrors.RenderBadRequest(w, "Unknown role.")
		return
	}

	// Admins cannot demote themselves; it is too easy to lock the
	// portal out of administration entirely.
	if u, ok := auth.CurrentUser(r); ok && u.ID == id.Hex() && role != models.RoleAdmin {
		uierrors.RenderBadRequest(w, "You cannot change your own role.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdateRole(ctx, id, role); err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Account not found.")
		return
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "update role failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSetActive activates or deactivates an account.
// PATCH /accounts/{id}/active
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode active failed", err, "Invalid request body.")
		return
	}

	if u, ok := auth.CurrentUser(r); ok && u.ID == id.Hex() && !req.Active {
		uierrors.RenderBadRequest(w, "You cannot deactivate your own account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.SetActive(ctx, id, req.Active); err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Account not found.")
		return
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "set active failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdatePassword resets an account's password.
// PATCH /accounts/{id}/password
func (h *Handler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode password failed", err, "Invalid request body.")
		return
	}
	if len(req.Password) < minPasswordLen {
		uierrors.RenderBadRequest(w, "Password must be at least 8 characters.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Could not update the password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, id, string(hashed)); err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Account not found.")
		return
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "update password failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "Bad account id.")
		return primitive.NilObjectID, false
	}
	return id, true
}
