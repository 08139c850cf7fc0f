package intake

import (
	"context"
	"fmt"
	"strings"

	"manhwahub/internal/catalog"
	"manhwahub/pkg/models"
)

// DraftChapter is an unpersisted chapter held by the builder. Number is
// assigned from the chapter's 1-based position and re-derived on every
// removal.
type DraftChapter struct {
	Title       string   `json:"title"`
	Number      int      `json:"number"`
	Pages       []string `json:"pages"`
	PublishDate string   `json:"publish_date"`
}

// Builder accumulates one draft title and its draft chapters, advanced only
// through the operations below, then persists the title followed by the
// chapter batch. The two writes are not atomic: a chapter failure leaves
// the title persisted without its chapters, and that partial state is
// surfaced rather than rolled back.
type Builder struct {
	store catalog.Store

	name        string
	author      string
	description string
	coverURL    string
	status      string
	rating      float64
	genres      []string
	chapters    []DraftChapter
}

func NewBuilder(store catalog.Store) *Builder {
	return &Builder{store: store, status: models.StatusOngoing}
}

func (b *Builder) SetName(v string)        { b.name = v }
func (b *Builder) SetAuthor(v string)      { b.author = v }
func (b *Builder) SetDescription(v string) { b.description = v }
func (b *Builder) SetCoverURL(v string)    { b.coverURL = v }
func (b *Builder) SetStatus(v string)      { b.status = v }
func (b *Builder) SetRating(v float64)     { b.rating = v }

// AddGenre appends the tag unless it is empty after trim or already
// present (case-sensitive exact match).
func (b *Builder) AddGenre(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, g := range b.genres {
		if g == tag {
			return
		}
	}
	b.genres = append(b.genres, tag)
}

func (b *Builder) RemoveGenre(tag string) {
	for i, g := range b.genres {
		if g == tag {
			b.genres = append(b.genres[:i], b.genres[i+1:]...)
			return
		}
	}
}

// AddChapter appends an empty draft chapter numbered after the current
// count.
func (b *Builder) AddChapter() {
	b.chapters = append(b.chapters, DraftChapter{
		Number: len(b.chapters) + 1,
		Pages:  []string{},
	})
}

// RemoveChapter drops the chapter at index and renumbers the remainder to
// 1..N. Renumbering is unconditional: a manually edited number elsewhere in
// the list does not survive a removal.
func (b *Builder) RemoveChapter(index int) {
	if index < 0 || index >= len(b.chapters) {
		return
	}
	b.chapters = append(b.chapters[:index], b.chapters[index+1:]...)
	for i := range b.chapters {
		b.chapters[i].Number = i + 1
	}
}

func (b *Builder) SetChapterTitle(index int, title string) {
	if index < 0 || index >= len(b.chapters) {
		return
	}
	b.chapters[index].Title = title
}

func (b *Builder) SetChapterNumber(index, number int) {
	if index < 0 || index >= len(b.chapters) {
		return
	}
	b.chapters[index].Number = number
}

func (b *Builder) SetChapterPublishDate(index int, date string) {
	if index < 0 || index >= len(b.chapters) {
		return
	}
	b.chapters[index].PublishDate = date
}

func (b *Builder) AddPage(chapterIndex int, pageRef string) {
	if chapterIndex < 0 || chapterIndex >= len(b.chapters) {
		return
	}
	b.chapters[chapterIndex].Pages = append(b.chapters[chapterIndex].Pages, pageRef)
}

func (b *Builder) RemovePage(chapterIndex, pageIndex int) {
	if chapterIndex < 0 || chapterIndex >= len(b.chapters) {
		return
	}
	pages := b.chapters[chapterIndex].Pages
	if pageIndex < 0 || pageIndex >= len(pages) {
		return
	}
	b.chapters[chapterIndex].Pages = append(pages[:pageIndex], pages[pageIndex+1:]...)
}

// Chapters returns a copy of the draft chapter list.
func (b *Builder) Chapters() []DraftChapter {
	out := make([]DraftChapter, len(b.chapters))
	copy(out, b.chapters)
	return out
}

// Genres returns a copy of the draft genre set in insertion order.
func (b *Builder) Genres() []string {
	out := make([]string, len(b.genres))
	copy(out, b.genres)
	return out
}

// Submit validates, persists the title, then persists the chapter batch.
//
// Validation failure returns a ValidationError and leaves the draft
// untouched. Once the store is reached the draft is discarded whatever
// happens: on a title insert failure nothing was written; on a chapter
// insert failure the already-persisted title is returned alongside the
// error so the caller can surface the partial state.
func (b *Builder) Submit(ctx context.Context) (*models.Title, []models.Chapter, error) {
	if strings.TrimSpace(b.name) == "" {
		return nil, nil, &catalog.ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(b.author) == "" {
		return nil, nil, &catalog.ValidationError{Field: "author", Reason: "required"}
	}
	if b.rating < 0 || b.rating > 5 {
		return nil, nil, &catalog.ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}

	fields := models.TitleFields{
		Name:        b.name,
		Author:      b.author,
		Description: b.description,
		CoverURL:    b.coverURL,
		Genres:      b.Genres(),
		Status:      b.status,
		Rating:      b.rating,
	}
	drafts := b.Chapters()
	b.reset()

	title, err := b.store.InsertTitle(ctx, fields)
	if err != nil {
		return nil, nil, err
	}

	if len(drafts) == 0 {
		return title, nil, nil
	}

	reqs := make([]models.ChapterFields, 0, len(drafts))
	for _, ch := range drafts {
		name := ch.Title
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Chapter %d", ch.Number)
		}
		reqs = append(reqs, models.ChapterFields{
			TitleID:     title.ID,
			Title:       name,
			Number:      ch.Number,
			Pages:       ch.Pages,
			PublishDate: ch.PublishDate,
		})
	}

	chapters, err := b.store.InsertChapters(ctx, reqs)
	if err != nil {
		// Title row stays; there is no compensating delete.
		return title, nil, err
	}
	return title, chapters, nil
}

func (b *Builder) reset() {
	store := b.store
	*b = Builder{store: store, status: models.StatusOngoing}
}
