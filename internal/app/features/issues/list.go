// internal/app/features/issues/list.go
package issues

import (
	"context"
	"encoding/json"
	"net/http"

	issuestore "github.com/daehokim/soluhub/internal/app/store/issues"
	"github.com/daehokim/soluhub/internal/app/system/listview"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/app/system/querysync"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// listFields is the query-string surface of the issue list. Issues
// filter and paginate in the database rather than through the snapshot
// pipeline, because issue volume grows without bound.
var listFields = querysync.Fields{
	Search:  true,
	Page:    true,
	Filters: []string{"status", "priority", "client"},
}

// issueItem is one issue row with its comment count prefetched.
type issueItem struct {
	models.Issue
	CommentCount int64 `json:"comment_count"`
}

// listResponse is the view model for the issue list screen.
type listResponse struct {
	Items      []issueItem `json:"items"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	TotalCount int64       `json:"total_count"`
	Search     string      `json:"search,omitempty"`
	Status     string      `json:"status,omitempty"`
	Priority   string      `json:"priority,omitempty"`
	Client     string      `json:"client,omitempty"`
	Query      string      `json:"query"`
}

// ServeList renders one page of a solution's issues.
// GET /{solution}/issues?status=&priority=&client=&search=&page=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	solution := normalize.Solution(chi.URLParam(r, "solution"))

	state := querysync.Parse(r.URL.Query(), listFields)
	state.Search = normalize.QueryParam(state.Search)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	const pageSize = listview.TablePageSize

	fetch := func(page int) ([]models.Issue, int64, error) {
		return h.Issues.ListFiltered(ctx, solution, issuestore.Filter{
			Status:   state.Filters["status"],
			Priority: state.Filters["priority"],
			Client:   state.Filters["client"],
			Search:   state.Search,
			Skip:     int64(page-1) * pageSize,
			Limit:    pageSize,
		})
	}

	items, total, err := fetch(state.Page)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list issues failed", err, "A database error occurred.")
		return
	}

	totalPages := listview.TotalPages(int(total), pageSize)
	if clamped := listview.ClampPage(state.Page, totalPages); clamped != state.Page {
		// The requested page fell off the end (e.g. a stale link after
		// deletions); refetch the clamped page.
		state.Page = clamped
		if items, total, err = fetch(state.Page); err != nil {
			h.ErrLog.LogServerError(w, r, "list issues failed", err, "A database error occurred.")
			return
		}
	}

	ids := make([]int64, len(items))
	for i, is := range items {
		ids[i] = is.ID
	}
	counts, err := h.Comments.CountByIssueIDs(ctx, ids)
	if err != nil {
		// Comment counts decorate the listing; the list itself is more
		// important than the badge numbers.
		h.Log.Warn("count comments failed", zap.Error(err))
		counts = map[int64]int64{}
	}

	rows := make([]issueItem, 0, len(items))
	for _, is := range items {
		rows = append(rows, issueItem{Issue: is, CommentCount: counts[is.ID]})
	}

	resp := listResponse{
		Items:      rows,
		Page:       state.Page,
		TotalPages: totalPages,
		TotalCount: total,
		Search:     state.Search,
		Status:     state.Filters["status"],
		Priority:   state.Filters["priority"],
		Client:     state.Filters["client"],
		Query:      querysync.Encode(state, listFields).Encode(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
