// internal/app/features/issues/comments.go
package issues

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	commentstore "github.com/daehokim/soluhub/internal/app/store/comments"
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// commentInput is the create/update request body.
type commentInput struct {
	Content string `json:"content"`
}

// HandleListComments returns an issue's comments, oldest first.
// GET /api/issues/{id}/comments
func (h *Handler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	issueID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Confirm the issue exists so a typo'd id reads as 404, not an
	// empty thread.
	if _, err := h.Issues.GetByID(ctx, issueID); err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Issue not found.")
		return
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "get issue failed", err, "A database error occurred.")
		return
	}

	comments, err := h.Comments.ListByIssue(ctx, issueID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list comments failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(comments)
}

// HandleCreateComment adds a comment authored by the signed-in user.
// POST /api/issues/{id}/comments
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	issueID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "Sign in to comment.")
		return
	}

	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode comment failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Issues.GetByID(ctx, issueID); err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, "Issue not found.")
		return
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "get issue failed", err, "A database error occurred.")
		return
	}

	created, err := h.Comments.Create(ctx, models.Comment{
		IssueID: issueID,
		Author:  user.Name,
		Content: in.Content,
	})
	if err == commentstore.ErrContentRequired {
		uierrors.RenderBadRequest(w, "Comment content is required.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create comment failed", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleUpdateComment rewrites a comment. Only the author can edit.
// PATCH /api/issues/{id}/comments/{commentID}
func (h *Handler) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := h.commentID(w, r)
	if !ok {
		return
	}
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "Sign in to edit comments.")
		return
	}

	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode comment failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Comments.UpdateContent(ctx, commentID, user.Name, in.Content)
	switch err {
	case nil:
	case commentstore.ErrContentRequired:
		uierrors.RenderBadRequest(w, "Comment content is required.")
		return
	case commentstore.ErrNotAuthor:
		uierrors.RenderForbidden(w, "Only the comment author can edit it.")
		return
	case mongo.ErrNoDocuments:
		uierrors.RenderNotFound(w, "Comment not found.")
		return
	default:
		h.ErrLog.LogServerError(w, r, "update comment failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteComment removes a comment. Only the author can delete.
// DELETE /api/issues/{id}/comments/{commentID}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := h.commentID(w, r)
	if !ok {
		return
	}
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "Sign in to delete comments.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Comments.Delete(ctx, commentID, user.Name)
	switch err {
	case nil:
	case commentstore.ErrNotAuthor:
		uierrors.RenderForbidden(w, "Only the comment author can delete it.")
		return
	case mongo.ErrNoDocuments:
		uierrors.RenderNotFound(w, "Comment not found.")
		return
	default:
		h.ErrLog.LogServerError(w, r, "delete comment failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) commentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
	if err != nil {
		uierrors.RenderBadRequest(w, "Bad comment id.")
		return 0, false
	}
	return id, true
}
