// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	userstore "github.com/daehokim/soluhub/internal/app/store/users"
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/app/system/ratelimit"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Limits     *ratelimit.LoginLimiter
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		Limits:     ratelimit.NewLoginLimiter(),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeStatus reports whether the caller has a live session.
// GET /login
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		SignedIn bool              `json:"signed_in"`
		User     *auth.SessionUser `json:"user,omitempty"`
	}{}
	if u, ok := auth.CurrentUser(r); ok {
		resp.SignedIn = true
		resp.User = u
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleLogin verifies credentials and starts a session.
// POST /login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login failed", err, "Invalid request body.")
		return
	}

	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		uierrors.RenderBadRequest(w, "Email and password are required.")
		return
	}

	if allowed, reason := h.Limits.Check(r, email); !allowed {
		h.Log.Warn("login throttled",
			zap.String("ip", ratelimit.ClientIP(r)),
			zap.String("email", email))
		uierrors.Render(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		// Burn a hash comparison so unknown emails take as long as
		// wrong passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		uierrors.RenderUnauthorized(w, "Invalid email or password.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "lookup user failed", err, "A database error occurred.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		h.Log.Info("login rejected", zap.String("email", email))
		uierrors.RenderUnauthorized(w, "Invalid email or password.")
		return
	}

	if !user.Active {
		uierrors.RenderForbidden(w, "This account has been deactivated.")
		return
	}

	su := &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Could not start a session.")
		return
	}
	h.Limits.ResetEmail(email)

	h.Log.Info("login succeeded",
		zap.String("user_id", su.ID),
		zap.String("email", su.Email),
		zap.String("role", su.Role))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(su)
}

// dummyHash is a bcrypt hash of a throwaway string, used to equalize
// response timing when the email does not exist.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
