package model

import "time"

// StatusCheck is a legacy liveness record kept for compatibility with
// early clients. It is not owner-scoped and requires no authentication.
type StatusCheck struct {
	ID         string    `json:"id"`         // status_checks.id
	ClientName string    `json:"client_name"` // status_checks.client_name
	Timestamp  time.Time `json:"timestamp"`  // status_checks.timestamp
}
