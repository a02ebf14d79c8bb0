// internal/app/features/issues/api.go
package issues

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	issuestore "github.com/daehokim/soluhub/internal/app/store/issues"
	"github.com/daehokim/soluhub/internal/app/system/selection"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// issueInput is the create request body.
type issueInput struct {
	Solution string   `json:"solution"`
	Title    string   `json:"title"`
	Client   string   `json:"client"`
	Assignee string   `json:"assignee"`
	Status   string   `json:"status"`
	Priority string   `json:"priority"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	DueDate  string   `json:"due_date"` // YYYY-MM-DD, empty for none
}

// issuePatch is the partial update body; absent fields stay untouched.
// due_date distinguishes absent (no change) from null (clear).
type issuePatch struct {
	Title    *string   `json:"title"`
	Client   *string   `json:"client"`
	Assignee *string   `json:"assignee"`
	Status   *string   `json:"status"`
	Priority *string   `json:"priority"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	DueDate  *string   `json:"due_date"`
}

// HandleAPIGet returns one issue.
// GET /api/issues/{id}
func (h *Handler) HandleAPIGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	is, err := h.Issues.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Issue not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get issue failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(is)
}

// HandleCreate inserts an issue.
// POST /api/issues
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in issueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode issue input failed", err, "Invalid request body.")
		return
	}

	var due *time.Time
	if in.DueDate != "" {
		t, err := time.Parse("2006-01-02", in.DueDate)
		if err != nil {
			uierrors.RenderBadRequest(w, "due_date must be YYYY-MM-DD.")
			return
		}
		due = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Issues.Create(ctx, modelFromInput(in, due))
	switch err {
	case nil:
	case issuestore.ErrTitleRequired:
		uierrors.RenderBadRequest(w, "Issue title is required.")
		return
	case issuestore.ErrBadStatus:
		uierrors.RenderBadRequest(w, "Unknown issue status.")
		return
	case issuestore.ErrBadPriority:
		uierrors.RenderBadRequest(w, "Unknown issue priority.")
		return
	default:
		h.ErrLog.LogServerError(w, r, "create issue failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandlePatch applies a partial update, including the status and
// priority changes the list view makes inline.
// PATCH /api/issues/{id}
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var in issuePatch
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode issue patch failed", err, "Invalid request body.")
		return
	}

	p := issuestore.Patch{
		Title:    in.Title,
		Client:   in.Client,
		Assignee: in.Assignee,
		Status:   in.Status,
		Priority: in.Priority,
		Content:  in.Content,
		Tags:     in.Tags,
	}
	if in.DueDate != nil {
		var due *time.Time
		if *in.DueDate != "" {
			t, err := time.Parse("2006-01-02", *in.DueDate)
			if err != nil {
				uierrors.RenderBadRequest(w, "due_date must be YYYY-MM-DD.")
				return
			}
			due = &t
		}
		p.DueDate = &due
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Issues.Update(ctx, id, p)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		uierrors.RenderNotFound(w, "Issue not found.")
		return
	case issuestore.ErrTitleRequired:
		uierrors.RenderBadRequest(w, "Issue title is required.")
		return
	case issuestore.ErrBadStatus:
		uierrors.RenderBadRequest(w, "Unknown issue status.")
		return
	case issuestore.ErrBadPriority:
		uierrors.RenderBadRequest(w, "Unknown issue priority.")
		return
	default:
		h.ErrLog.LogServerError(w, r, "patch issue failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes an issue and cascades to its comments. The
// comment cascade is best-effort: a failure there leaves orphans but
// does not resurrect the issue.
// DELETE /api/issues/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Issues.Delete(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Issue not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete issue failed", err, "A database error occurred.")
		return
	}

	if n, err := h.Comments.DeleteByIssue(ctx, id); err != nil {
		h.Log.Warn("cascade comment delete failed",
			zap.Int64("issue_id", id), zap.Error(err))
	} else if n > 0 {
		h.Log.Info("cascaded comment delete",
			zap.Int64("issue_id", id), zap.Int64("comments", n))
	}

	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted   int     `json:"deleted"`
	FailedIDs []int64 `json:"failed_ids,omitempty"`
}

// HandleBulkDelete removes the selected issues and their comments,
// continuing past individual failures. The response names the ids
// that could not be deleted.
// POST /api/issues/bulk_delete
func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode bulk delete failed", err, "Invalid request body.")
		return
	}
	if _, err := selection.New(req.IDs...).Any(); err != nil {
		uierrors.Render(w, http.StatusConflict, "Select at least one issue to delete.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var resp bulkDeleteResponse
	for _, id := range req.IDs {
		if err := h.Issues.Delete(ctx, id); err != nil {
			h.Log.Warn("bulk delete: issue delete failed",
				zap.Int64("issue_id", id), zap.Error(err))
			resp.FailedIDs = append(resp.FailedIDs, id)
			continue
		}
		resp.Deleted++

		if _, err := h.Comments.DeleteByIssue(ctx, id); err != nil {
			h.Log.Warn("cascade comment delete failed",
				zap.Int64("issue_id", id), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if len(resp.FailedIDs) > 0 {
		w.WriteHeader(http.StatusMultiStatus)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// helpers

func modelFromInput(in issueInput, due *time.Time) models.Issue {
	return models.Issue{
		Solution: in.Solution,
		Title:    in.Title,
		Client:   in.Client,
		Assignee: in.Assignee,
		Status:   in.Status,
		Priority: in.Priority,
		Content:  in.Content,
		Tags:     in.Tags,
		DueDate:  due,
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		uierrors.RenderBadRequest(w, "Bad issue id.")
		return 0, false
	}
	return id, true
}
