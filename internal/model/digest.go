package model

import "time"

// Digest is the assembled output of one run: everything the delivery
// collaborator needs to render and send the daily email.
type Digest struct {
	RunID         int64
	UserID        int64
	Subject       string
	Opportunities []Opportunity
	GeneratedAt   time.Time
}

// PostIDs returns the ids of every opportunity in the digest, in order.
func (d Digest) PostIDs() []string {
	ids := make([]string, len(d.Opportunities))
	for i, o := range d.Opportunities {
		ids[i] = o.PostID
	}
	return ids
}
