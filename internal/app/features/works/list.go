// internal/app/features/works/list.go
package works

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/daehokim/soluhub/internal/app/system/listview"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/app/system/querysync"
	"github.com/daehokim/soluhub/internal/app/system/selection"
	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/daehokim/soluhub/internal/app/system/weekcal"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// listFields is the query-string surface of the weekly work view. Work
// weeks are bounded, so there is no page or mode parameter.
var listFields = querysync.Fields{Search: true, Week: true, Selected: true}

// workItem is one work log row with its selection state.
type workItem struct {
	models.Work
	Selected bool `json:"selected"`
}

// listResponse is the view model for the weekly work screen.
type listResponse struct {
	Week        weekcal.Token `json:"week"`
	WeekLabel   string        `json:"week_label"`
	WeekStart   string        `json:"week_start"`
	WeekEnd     string        `json:"week_end"`
	PrevWeek    weekcal.Token `json:"prev_week"`
	NextWeek    weekcal.Token `json:"next_week"`
	Items       []workItem    `json:"items"`
	TotalCount  int           `json:"total_count"`
	Search      string        `json:"search,omitempty"`
	SelectedIDs []int64       `json:"selected_ids,omitempty"`
	AllSelected bool          `json:"all_selected"`
	Query       string        `json:"query"`
}

// ServeList renders one week of a solution's work logs.
// GET /{solution}/works?week=YYYY-Www
//
// A missing or malformed week token falls back to the current week, so
// a mangled shared URL degrades to a sane view instead of an error.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	solution := normalize.Solution(chi.URLParam(r, "solution"))

	state := querysync.Parse(r.URL.Query(), listFields)
	state.Search = normalize.QueryParam(state.Search)

	week := weekcal.Token(state.Week)
	start, end, ok := weekcal.Range(week)
	if !ok {
		week = weekcal.Current(h.Clock.Now())
		start, end, _ = weekcal.Range(week)
	}
	state.Week = string(week)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// end is Sunday midnight; extend to the end of Sunday so the whole
	// day is included.
	logs, err := h.Works.ListBySolutionRange(ctx, solution, start, end.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list works failed", err, "A database error occurred.")
		return
	}

	cfg := listview.Config[models.Work]{
		Match: func(wk models.Work) bool {
			return listview.SearchMatch(wk.Client, state.Search) ||
				listview.SearchMatch(wk.Content, state.Search)
		},
	}
	view := listview.Apply(logs, cfg, 1, len(logs)+1)

	filteredIDs := make([]int64, len(view.Filtered))
	for i, wk := range view.Filtered {
		filteredIDs[i] = wk.ID
	}
	sel := selection.New(state.Selected...)
	state.Selected = sel.IDs()

	items := make([]workItem, 0, len(view.Filtered))
	for _, wk := range view.Filtered {
		items = append(items, workItem{Work: wk, Selected: sel.Has(wk.ID)})
	}

	resp := listResponse{
		Week:        week,
		WeekLabel:   weekcal.Label(week),
		WeekStart:   start.Format("2006-01-02"),
		WeekEnd:     end.Format("2006-01-02"),
		PrevWeek:    weekcal.Prev(week),
		NextWeek:    weekcal.Next(week),
		Items:       items,
		TotalCount:  len(items),
		Search:      state.Search,
		SelectedIDs: state.Selected,
		AllSelected: sel.AllSelected(filteredIDs),
		Query:       querysync.Encode(state, listFields).Encode(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
