package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)        // GET /manhwa?q=&genre=
	rg.GET("/:id", h.getByID) // GET /manhwa/:id
}

// list fetches the whole catalog (newest first) and filters it in memory.
// The set is small; re-filtering per request replaces query-side WHERE
// clauses.
func (h *Handler) list(c *gin.Context) {
	titles, err := h.Store.ListTitles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	items := Filter(titles, c.Query("q"), c.Query("genre"))
	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

// getByID hydrates the detail view: the title plus its ordered chapter
// list. Both reads must succeed before anything is rendered; the first
// failure wins.
func (h *Handler) getByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	t, err := h.Store.GetTitleByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}

	chapters, err := h.Store.ListChaptersByTitle(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chapters failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":    t,
		"chapters": chapters,
	})
}

// Genres serves the distinct tag set for the listing filter bar.
func (h *Handler) Genres(c *gin.Context) {
	titles, err := h.Store.ListTitles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	genres := Genres(titles)
	if genres == nil {
		genres = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}
