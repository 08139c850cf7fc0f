package events

import "time"

const (
	TypeTitleCreated   = "title.created"
	TypeChapterCreated = "chapter.created"
)

// CatalogEvent tells connected listing clients that the catalog changed and
// a refetch is worthwhile.
type CatalogEvent struct {
	Type      string    `json:"type"`
	TitleID   string    `json:"title_id"`
	TitleName string    `json:"title_name,omitempty"`
	Chapters  int       `json:"chapters,omitempty"`
	At        time.Time `json:"at"`
}
