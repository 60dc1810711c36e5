package models

// User represents a person whose exercises are tracked.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}
