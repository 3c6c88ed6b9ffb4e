package models

import "time"

// BillingStatus reflects the account's subscription state as reported by the
// billing provider, read-only on the client.
type BillingStatus struct {
	Plan              string     `json:"plan"`
	Status            string     `json:"status"`
	RenewsAt          *time.Time `json:"renews_at,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
}
