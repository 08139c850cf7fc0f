package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"manhwahub/internal/catalog"
	"manhwahub/pkg/database"
	"manhwahub/pkg/models"
)

// Imports a catalog from two CSV files. titles.csv:
//
//	name,author,description,cover_url,genres,status,rating
//
// chapters.csv (title_name joins on the titles file, pages and genres are
// pipe-separated):
//
//	title_name,title,number,pages,publish_date
func main() {
	var (
		titlesIn   = flag.String("titles", "data/titles.csv", "input CSV path for titles")
		chaptersIn = flag.String("chapters", "data/chapters.csv", "input CSV path for chapters")
	)
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := catalog.NewRepo(db)

	ids, err := importTitles(ctx, repo, *titlesIn)
	if err != nil {
		log.Fatalf("import titles failed: %v", err)
	}
	n, err := importChapters(ctx, repo, *chaptersIn, ids)
	if err != nil {
		log.Fatalf("import chapters failed: %v", err)
	}

	log.Printf("imported %d titles and %d chapters", len(ids), n)
}

func importTitles(ctx context.Context, repo *catalog.Repo, path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := asRow(header, rec)

		rating, _ := strconv.ParseFloat(row["rating"], 64)
		fields := models.TitleFields{
			Name:        row["name"],
			Author:      row["author"],
			Description: row["description"],
			CoverURL:    row["cover_url"],
			Genres:      splitList(row["genres"]),
			Status:      row["status"],
			Rating:      rating,
		}

		t, err := repo.InsertTitle(ctx, fields)
		if err != nil {
			return nil, fmt.Errorf("insert title %q: %w", fields.Name, err)
		}
		ids[t.Name] = t.ID
	}
	return ids, nil
}

func importChapters(ctx context.Context, repo *catalog.Repo, path string, ids map[string]string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	// group per title so each title gets one batch insert
	grouped := make(map[string][]models.ChapterFields)
	var order []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		row := asRow(header, rec)

		titleName := row["title_name"]
		titleID, ok := ids[titleName]
		if !ok {
			return 0, fmt.Errorf("chapter references unknown title %q", titleName)
		}

		number, err := strconv.Atoi(row["number"])
		if err != nil {
			return 0, fmt.Errorf("chapter number %q: %w", row["number"], err)
		}

		if _, seen := grouped[titleID]; !seen {
			order = append(order, titleID)
		}
		grouped[titleID] = append(grouped[titleID], models.ChapterFields{
			TitleID:     titleID,
			Title:       row["title"],
			Number:      number,
			Pages:       splitList(row["pages"]),
			PublishDate: row["publish_date"],
		})
	}

	total := 0
	for _, titleID := range order {
		if _, err := repo.InsertChapters(ctx, grouped[titleID]); err != nil {
			return total, err
		}
		total += len(grouped[titleID])
	}
	return total, nil
}

func readHeader(r *csv.Reader) ([]string, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}
	return header, nil
}

func asRow(header, rec []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(rec) {
			row[col] = strings.TrimSpace(rec[i])
		}
	}
	return row
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
