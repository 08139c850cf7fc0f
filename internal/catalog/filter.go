package catalog

import (
	"strings"

	"manhwahub/pkg/models"
)

// Filter reduces titles to those matching a free-text query and an optional
// genre tag. An empty query matches everything; otherwise the query must be
// a case-insensitive substring of the name or the author. An empty genre
// means no genre constraint; otherwise the title's genre set must contain
// it exactly. Input order is preserved and the input is never mutated.
//
// Cheap enough to re-run on every keystroke for catalog-sized lists.
func Filter(titles []models.Title, query, genre string) []models.Title {
	q := strings.ToLower(query)

	out := make([]models.Title, 0, len(titles))
	for _, t := range titles {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Author), q) {
			continue
		}
		if genre != "" && !hasGenre(t.Genres, genre) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Genres collects the distinct genre tags across titles in first-seen
// order, for the listing filter bar.
func Genres(titles []models.Title) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range titles {
		for _, g := range t.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}

func hasGenre(genres []string, genre string) bool {
	for _, g := range genres {
		if g == genre {
			return true
		}
	}
	return false
}
