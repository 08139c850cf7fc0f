package reader

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"manhwahub/internal/catalog"
)

type Handler struct {
	Store catalog.Store
}

func NewHandler(store catalog.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/chapters/:chapter_id", h.read) // GET /manhwa/:id/chapters/:chapter_id?page=N
}

// read hydrates a reader view: the chapter, its owning title and the
// sibling list, positioned at the requested page. Out-of-range page values
// clamp to the valid range instead of erroring.
func (h *Handler) read(c *gin.Context) {
	titleID := strings.TrimSpace(c.Param("id"))
	chapterID := strings.TrimSpace(c.Param("chapter_id"))
	if titleID == "" || chapterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and chapter ids required"})
		return
	}

	ctx := c.Request.Context()

	chapter, err := h.Store.GetChapterByID(ctx, chapterID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	if chapter.TitleID != titleID {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}

	title, err := h.Store.GetTitleByID(ctx, titleID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	siblings, err := h.Store.ListChaptersByTitle(ctx, titleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}

	sess := NewSession(*chapter, siblings)
	for n := parseInt(c.Query("page"), 0); n > 0 && sess.HasNextPage(); n-- {
		sess.NextPage()
	}

	resp := gin.H{
		"title": gin.H{
			"id":   title.ID,
			"name": title.Name,
		},
		"chapter":       sess.Chapter(),
		"page_index":    sess.Page(),
		"page_count":    sess.PageCount(),
		"has_next_page": sess.HasNextPage(),
		"has_prev_page": sess.HasPrevPage(),
		"complete":      sess.Complete(),
		"empty":         sess.Empty(),
	}

	if page, ok := sess.CurrentPage(); ok {
		resp["page"] = page
	} else {
		resp["message"] = "no pages available"
	}
	if next := sess.NextChapter(); next != nil {
		resp["next_chapter_id"] = next.ID
	}
	if prev := sess.PrevChapter(); prev != nil {
		resp["prev_chapter_id"] = prev.ID
	}

	c.JSON(http.StatusOK, resp)
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
