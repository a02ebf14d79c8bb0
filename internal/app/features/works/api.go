// internal/app/features/works/api.go
package works

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	workstore "github.com/daehokim/soluhub/internal/app/store/works"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/app/system/querysync"
	"github.com/daehokim/soluhub/internal/app/system/selection"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// workInput is the create/update request body.
type workInput struct {
	Client   string `json:"client"`
	Solution string `json:"solution"`
	Date     string `json:"date"` // YYYY-MM-DD
	Content  string `json:"content"`
	Issue    string `json:"issue"`
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted   int     `json:"deleted"`
	FailedIDs []int64 `json:"failed_ids,omitempty"`
}

// HandleAPIList returns work logs in a date range.
// GET /api/works?solution=...&start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.Parse("2006-01-02", q.Get("start"))
	if err != nil {
		uierrors.RenderBadRequest(w, "start must be YYYY-MM-DD.")
		return
	}
	end, err := time.Parse("2006-01-02", q.Get("end"))
	if err != nil {
		uierrors.RenderBadRequest(w, "end must be YYYY-MM-DD.")
		return
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var items []models.Work
	if solution := normalize.Solution(q.Get("solution")); solution != "" {
		items, err = h.Works.ListBySolutionRange(ctx, solution, start, end)
	} else {
		items, err = h.Works.ListRange(ctx, start, end)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list works failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

// HandleAPIGet returns one work log.
// GET /api/works/{id}
func (h *Handler) HandleAPIGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	wk, err := h.Works.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Work log not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get work failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(wk)
}

// ServeEditTarget resolves the current selection to the one work log an
// edit form should load; anything but exactly one selected id is a
// precondition failure.
// GET /works/edit?selected=1,2,3
func (h *Handler) ServeEditTarget(w http.ResponseWriter, r *http.Request) {
	state := querysync.Parse(r.URL.Query(), listFields)

	id, err := selection.New(state.Selected...).Single()
	if err != nil {
		uierrors.Render(w, http.StatusConflict, "Select exactly one work log to edit.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	wk, err := h.Works.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Work log not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get work failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(wk)
}

// HandleCreate inserts a work log.
// POST /api/works
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	wk, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Works.Create(ctx, wk)
	if err == workstore.ErrClientRequired {
		uierrors.RenderBadRequest(w, "Client name is required.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create work failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleUpdate replaces a work log's fields.
// PUT /api/works/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	wk, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Works.Update(ctx, id, wk)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Work log not found.")
		return
	}
	if err == workstore.ErrClientRequired {
		uierrors.RenderBadRequest(w, "Client name is required.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update work failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes one work log.
// DELETE /api/works/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Works.Delete(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Work log not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete work failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleBulkDelete removes the selected work logs, continuing past
// individual failures.
// POST /api/works/bulk_delete
func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode bulk delete failed", err, "Invalid request body.")
		return
	}
	if _, err := selection.New(req.IDs...).Any(); err != nil {
		uierrors.Render(w, http.StatusConflict, "Select at least one work log to delete.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var resp bulkDeleteResponse
	for _, id := range req.IDs {
		if err := h.Works.Delete(ctx, id); err != nil {
			h.Log.Warn("bulk delete: work delete failed",
				zap.Int64("work_id", id), zap.Error(err))
			resp.FailedIDs = append(resp.FailedIDs, id)
			continue
		}
		resp.Deleted++
	}

	w.Header().Set("Content-Type", "application/json")
	if len(resp.FailedIDs) > 0 {
		w.WriteHeader(http.StatusMultiStatus)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// helpers

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		uierrors.RenderBadRequest(w, "Bad work log id.")
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (models.Work, bool) {
	var in workInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode work input failed", err, "Invalid request body.")
		return models.Work{}, false
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		uierrors.RenderBadRequest(w, "date must be YYYY-MM-DD.")
		return models.Work{}, false
	}

	return models.Work{
		Client:   in.Client,
		Solution: in.Solution,
		Date:     date,
		Content:  in.Content,
		Issue:    normalize.QueryParam(in.Issue),
	}, true
}
