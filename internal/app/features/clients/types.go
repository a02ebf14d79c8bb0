// internal/app/features/clients/types.go
package clients

import (
	"time"

	"github.com/daehokim/soluhub/internal/app/system/license"
	"github.com/daehokim/soluhub/internal/domain/models"
)

// clientItem is one client as the list view renders it: the record plus
// the license bucket computed at request time and the row's selection
// state.
type clientItem struct {
	models.Client
	LicenseStatus string `json:"license_status"`
	Selected      bool   `json:"selected"`
}

func newClientItem(c models.Client, now time.Time, selected bool) clientItem {
	return clientItem{
		Client:        c,
		LicenseStatus: license.Classify(c.LicenseEnd, now).String(),
		Selected:      selected,
	}
}

// listResponse is the view model for the client list screens.
type listResponse struct {
	Items       []clientItem `json:"items"`
	Page        int          `json:"page"`
	TotalPages  int          `json:"total_pages"`
	TotalCount  int          `json:"total_count"`
	Mode        string       `json:"mode"`
	Search      string       `json:"search,omitempty"`
	TileSlots   int          `json:"tile_slots"`
	SelectedIDs []int64      `json:"selected_ids,omitempty"`
	AllSelected bool         `json:"all_selected"`

	// Query is the canonical query string for this state; pushing it
	// into the address bar makes the view shareable.
	Query string `json:"query"`
}

// clientInput is the create/update request body. Date fields use
// YYYY-MM-DD; empty strings mean "not set".
type clientInput struct {
	Name         string `json:"name"`
	Solution     string `json:"solution"`
	ContractType string `json:"contract_type"`
	LicenseType  string `json:"license_type"`
	LicenseStart string `json:"license_start"`
	LicenseEnd   string `json:"license_end"`
	ManagerName  string `json:"manager_name"`
	ManagerEmail string `json:"manager_email"`
	ManagerPhone string `json:"manager_phone"`
	Location     string `json:"location"`
	Memo         string `json:"memo"`
}

// bulkDeleteRequest carries the selected ids of a bulk delete.
type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// bulkDeleteResponse reports which deletions succeeded. The selection
// is always cleared afterwards, even on partial failure.
type bulkDeleteResponse struct {
	Deleted   int     `json:"deleted"`
	FailedIDs []int64 `json:"failed_ids,omitempty"`
}
