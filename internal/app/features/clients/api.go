// internal/app/features/clients/api.go
package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	clientstore "github.com/daehokim/soluhub/internal/app/store/clients"
	"github.com/daehokim/soluhub/internal/app/system/htmlsanitize"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/app/system/querysync"
	"github.com/daehokim/soluhub/internal/app/system/selection"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleAPIList returns raw client records, optionally scoped.
// GET /api/clients?solution=...
func (h *Handler) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		items []models.Client
		err   error
	)
	if solution := normalize.Solution(r.URL.Query().Get("solution")); solution != "" {
		items, err = h.Clients.ListBySolution(ctx, solution)
	} else {
		items, err = h.Clients.List(ctx)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list clients failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

// HandleAPIGet returns one client.
// GET /api/clients/{id}
func (h *Handler) HandleAPIGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Clients.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Client not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get client failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// HandleCreate inserts a client.
// POST /api/clients
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Clients.Create(ctx, c)
	if err == clientstore.ErrNameRequired {
		uierrors.RenderBadRequest(w, "Client name is required.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create client failed", err, "A database error occurred.")
		return
	}
	h.Cache.Invalidate()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleUpdate replaces a client's fields.
// PUT /api/clients/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Clients.Update(ctx, id, c)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Client not found.")
		return
	}
	if err == clientstore.ErrNameRequired {
		uierrors.RenderBadRequest(w, "Client name is required.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update client failed", err, "A database error occurred.")
		return
	}
	h.Cache.Invalidate()

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes one client.
// DELETE /api/clients/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Clients.Delete(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Client not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete client failed", err, "A database error occurred.")
		return
	}
	h.Cache.Invalidate()

	w.WriteHeader(http.StatusNoContent)
}

// HandleBulkDelete removes the selected clients, continuing past
// individual failures so one bad id does not strand the rest. The
// response names the ids that could not be deleted.
// POST /api/clients/bulk_delete
func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode bulk delete failed", err, "Invalid request body.")
		return
	}
	if _, err := selection.New(req.IDs...).Any(); err != nil {
		uierrors.Render(w, http.StatusConflict, "Select at least one client to delete.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var resp bulkDeleteResponse
	for _, id := range req.IDs {
		if err := h.Clients.Delete(ctx, id); err != nil {
			h.Log.Warn("bulk delete: client delete failed",
				zap.Int64("client_id", id), zap.Error(err))
			resp.FailedIDs = append(resp.FailedIDs, id)
			continue
		}
		resp.Deleted++
	}
	h.Cache.Invalidate()

	w.Header().Set("Content-Type", "application/json")
	if len(resp.FailedIDs) > 0 {
		w.WriteHeader(http.StatusMultiStatus)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ServeEditTarget resolves the current selection to the one client an
// edit form should load. Anything other than exactly one selected id is
// a precondition failure, reported without touching the store.
// GET /clients/edit?selected=1,2,3
func (h *Handler) ServeEditTarget(w http.ResponseWriter, r *http.Request) {
	state := querysync.Parse(r.URL.Query(), listFields)

	id, err := selection.New(state.Selected...).Single()
	if err != nil {
		uierrors.Render(w, http.StatusConflict, "Select exactly one client to edit.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Clients.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Client not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get client failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// helpers

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		uierrors.RenderBadRequest(w, "Bad client id.")
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (models.Client, bool) {
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode client input failed", err, "Invalid request body.")
		return models.Client{}, false
	}

	start, ok := parseDate(in.LicenseStart)
	if !ok {
		uierrors.RenderBadRequest(w, "license_start must be YYYY-MM-DD.")
		return models.Client{}, false
	}
	end, ok := parseDate(in.LicenseEnd)
	if !ok {
		uierrors.RenderBadRequest(w, "license_end must be YYYY-MM-DD.")
		return models.Client{}, false
	}

	licenseType := normalize.Status(in.LicenseType)
	if licenseType == "" {
		licenseType = models.LicenseSubscription
	}

	return models.Client{
		Name:         in.Name,
		Solution:     in.Solution,
		ContractType: normalize.Status(in.ContractType),
		LicenseType:  licenseType,
		LicenseStart: start,
		LicenseEnd:   end,
		ManagerName:  normalize.Name(in.ManagerName),
		ManagerEmail: normalize.Email(in.ManagerEmail),
		ManagerPhone: normalize.QueryParam(in.ManagerPhone),
		Location:     normalize.QueryParam(in.Location),
		Memo:         htmlsanitize.Sanitize(in.Memo),
	}, true
}

// parseDate turns a YYYY-MM-DD string into a UTC midnight time.
// Empty means "not set"; malformed reports !ok.
func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
