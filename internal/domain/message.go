package domain

import "time"

// Message is one chat line inside a session. Rows are append-only: never
// mutated, never deleted, ordered by created_at ascending.
type Message struct {
	ID        string    `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	SenderID  string    `json:"sender_id" db:"sender_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
