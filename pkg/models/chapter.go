package models

import "time"

// Chapter is one installment of a title. Number is the sole sort and
// adjacency key; pages may be empty.
type Chapter struct {
	ID          string    `json:"id"`
	TitleID     string    `json:"title_id"`
	Title       string    `json:"title"`
	Number      int       `json:"number"`
	Pages       []string  `json:"pages"`
	PublishDate string    `json:"publish_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChapterFields is the insert-request shape for one chapter.
type ChapterFields struct {
	TitleID     string
	Title       string
	Number      int
	Pages       []string
	PublishDate string
}
