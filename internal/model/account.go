package model

import "time"

type Plan string

const (
	PlanFree Plan = "free"
	PlanPaid Plan = "paid"
)

// MaxAccounts returns how many monitored accounts the plan allows.
func (p Plan) MaxAccounts() int {
	if p == PlanPaid {
		return 10
	}
	return 1
}

// MonitoredAccount is a content source a user has asked us to watch.
type MonitoredAccount struct {
	ID          int64
	UserID      int64
	Handle      string
	DisplayName *string
	Category    *string
	CreatedAt   time.Time
}
