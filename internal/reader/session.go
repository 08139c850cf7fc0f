package reader

import (
	"manhwahub/internal/catalog"
	"manhwahub/pkg/models"
)

// Session tracks the reading position inside one chapter and derives the
// available navigation from the sibling chapter list. Navigation facts are
// recomputed from the current state, never stored separately.
type Session struct {
	chapter  models.Chapter
	siblings []models.Chapter
	page     int
}

// NewSession starts at page 0. The siblings slice must be the full chapter
// list of the owning title, ordered or not; adjacency is looked up by
// number.
func NewSession(chapter models.Chapter, siblings []models.Chapter) *Session {
	return &Session{chapter: chapter, siblings: siblings}
}

func (s *Session) Chapter() models.Chapter { return s.chapter }
func (s *Session) Page() int               { return s.page }
func (s *Session) PageCount() int          { return len(s.chapter.Pages) }

// CurrentPage returns the page reference at the cursor, or ok=false for an
// empty chapter.
func (s *Session) CurrentPage() (string, bool) {
	if len(s.chapter.Pages) == 0 {
		return "", false
	}
	return s.chapter.Pages[s.page], true
}

// NextPage advances one page. At the last page it is a no-op; it never
// advances into the next chapter.
func (s *Session) NextPage() {
	if s.page < len(s.chapter.Pages)-1 {
		s.page++
	}
}

// PrevPage steps back one page, a no-op at page 0.
func (s *Session) PrevPage() {
	if s.page > 0 {
		s.page--
	}
}

func (s *Session) HasNextPage() bool { return s.page < len(s.chapter.Pages)-1 }
func (s *Session) HasPrevPage() bool { return s.page > 0 }

// Complete reports whether the cursor sits on the last page. An empty
// chapter is never complete; it is a separate terminal state, see Empty.
func (s *Session) Complete() bool {
	return len(s.chapter.Pages) > 0 && s.page == len(s.chapter.Pages)-1
}

// Empty reports the no-pages terminal state. No page controls apply.
func (s *Session) Empty() bool { return len(s.chapter.Pages) == 0 }

// NextChapter finds the sibling numbered exactly one above the active
// chapter. A gap is not bridged: with chapters {1,2,3,5} loaded on 3,
// there is no next chapter.
func (s *Session) NextChapter() *models.Chapter {
	return s.siblingByNumber(s.chapter.Number + 1)
}

// PrevChapter finds the sibling numbered exactly one below.
func (s *Session) PrevChapter() *models.Chapter {
	return s.siblingByNumber(s.chapter.Number - 1)
}

// JumpToChapter replaces the active chapter and resets to page 0. The
// target must be in the sibling list; anything else is ErrNotFound.
func (s *Session) JumpToChapter(targetChapterID string) error {
	for _, ch := range s.siblings {
		if ch.ID == targetChapterID {
			s.chapter = ch
			s.page = 0
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *Session) siblingByNumber(number int) *models.Chapter {
	for i := range s.siblings {
		if s.siblings[i].Number == number {
			ch := s.siblings[i]
			return &ch
		}
	}
	return nil
}
