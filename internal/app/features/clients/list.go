// internal/app/features/clients/list.go
package clients

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
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// listFields is the query-string surface of the client list views.
var listFields = querysync.Fields{Search: true, Page: true, Mode: true, Selected: true}

// ServeList renders the client list view model.
// GET /clients and GET /{solution}/clients
//
// The whole pipeline runs against the snapshot cache: filter by
// solution and search, sort by license start (undated last), then page
// by the mode's page size. Selection ids arrive in the query string and
// survive filter changes untouched; only rows in the filtered view get
// selection decoration, so widening a search restores earlier picks.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	solution := normalize.Solution(chi.URLParam(r, "solution"))

	state := querysync.Parse(r.URL.Query(), listFields)
	state.Search = normalize.QueryParam(state.Search)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Cache.Get(ctx, h.fetchAll)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load clients snapshot failed", err, "A database error occurred.")
		return
	}

	pageSize := listview.TileCount
	if state.Mode == querysync.ModeTable {
		pageSize = listview.TablePageSize
	}

	cfg := listview.Config[models.Client]{
		Match: func(c models.Client) bool {
			if solution != "" && c.Solution != solution {
				return false
			}
			return listview.SearchMatch(c.Name, state.Search)
		},
		SortKey: func(c models.Client) (time.Time, bool) {
			if c.LicenseStart == nil {
				return time.Time{}, false
			}
			return *c.LicenseStart, true
		},
	}
	view := listview.Apply(all, cfg, state.Page, pageSize)
	state.Page = view.Page

	filteredIDs := make([]int64, len(view.Filtered))
	for i, c := range view.Filtered {
		filteredIDs[i] = c.ID
	}
	sel := selection.New(state.Selected...)
	state.Selected = sel.IDs()

	now := h.Clock.Now()
	items := make([]clientItem, 0, len(view.Items))
	for _, c := range view.Items {
		items = append(items, newClientItem(c, now, sel.Has(c.ID)))
	}

	resp := listResponse{
		Items:       items,
		Page:        view.Page,
		TotalPages:  view.TotalPages,
		TotalCount:  len(view.Filtered),
		Mode:        string(state.Mode),
		Search:      state.Search,
		SelectedIDs: state.Selected,
		AllSelected: sel.AllSelected(filteredIDs),
		Query:       querysync.Encode(state, listFields).Encode(),
	}
	if state.Mode == querysync.ModeTile {
		resp.TileSlots = listview.TileSlots(len(items))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) fetchAll(ctx context.Context) ([]models.Client, error) {
	return h.Clients.List(ctx)
}
