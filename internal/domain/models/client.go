package models

import "time"

// PerpetualEnd is the reserved license_end value meaning "no expiry."
// It is a sentinel, never a real calendar comparison target.
const PerpetualEnd = "9999-12-31"

// License types.
const (
	LicenseSubscription = "subscription"
	LicensePerpetual    = "perpetual"
)

// Client is a customer company tracked under one solution.
//
// Numeric IDs (rather than ObjectIDs) are exposed because list-view
// selection state carries ids through URL query strings.
type Client struct {
	ID           int64      `bson:"_id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Solution     string     `bson:"solution,omitempty" json:"solution,omitempty"`
	ContractType string     `bson:"contract_type" json:"contract_type"`
	LicenseType  string     `bson:"license_type" json:"license_type"` // subscription | perpetual
	LicenseStart *time.Time `bson:"license_start,omitempty" json:"license_start,omitempty"`
	LicenseEnd   *time.Time `bson:"license_end,omitempty" json:"license_end,omitempty"`
	ManagerName  string     `bson:"manager_name,omitempty" json:"manager_name,omitempty"`
	ManagerEmail string     `bson:"manager_email,omitempty" json:"manager_email,omitempty"`
	ManagerPhone string     `bson:"manager_phone,omitempty" json:"manager_phone,omitempty"`
	Location     string     `bson:"location,omitempty" json:"location,omitempty"`
	Memo         string     `bson:"memo,omitempty" json:"memo,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PerpetualLicense reports whether the client's license never expires,
// either because license_end is absent or because it carries the sentinel.
func (c Client) PerpetualLicense() bool {
	if c.LicenseEnd == nil {
		return true
	}
	return c.LicenseEnd.Format("2006-01-02") == PerpetualEnd
}
