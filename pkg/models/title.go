package models

import "time"

const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Title is a catalog entry for one serialized work.
type Title struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Genres      []string  `json:"genres"`
	Status      string    `json:"status"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TitleFields is the insert-request shape. The store assigns the ID and
// timestamps on creation.
type TitleFields struct {
	Name        string
	Author      string
	Description string
	CoverURL    string
	Genres      []string
	Status      string
	Rating      float64
}
