package models

import "time"

// UserSummary is the part of a user account shown next to the reports it
// filed.
type UserSummary struct {
	ID       int        `json:"id"`
	Username string     `json:"username"`
	Created  *time.Time `json:"created,omitempty"`
}
