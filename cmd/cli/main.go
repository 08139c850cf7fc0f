package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"manhwahub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type listResponse struct {
	Total int            `json:"total"`
	Items []models.Title `json:"items"`
}

type detailResponse struct {
	Title    models.Title     `json:"title"`
	Chapters []models.Chapter `json:"chapters"`
}

type readResponse struct {
	Chapter       models.Chapter `json:"chapter"`
	Page          string         `json:"page"`
	PageIndex     int            `json:"page_index"`
	PageCount     int            `json:"page_count"`
	HasNextPage   bool           `json:"has_next_page"`
	HasPrevPage   bool           `json:"has_prev_page"`
	Complete      bool           `json:"complete"`
	Empty         bool           `json:"empty"`
	Message       string         `json:"message"`
	NextChapterID string         `json:"next_chapter_id"`
	PrevChapterID string         `json:"prev_chapter_id"`
}

type genresResponse struct {
	Genres []string `json:"genres"`
}

func main() {
	global := flag.NewFlagSet("manhwahub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "list":
		err = runList(*baseURL, args[1:])
	case "show":
		err = runShow(*baseURL, args[1:])
	case "read":
		err = runRead(*baseURL, args[1:])
	case "genres":
		err = runGenres(*baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}

func runList(baseURL string, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	q := fs.String("q", "", "search text for name/author")
	genre := fs.String("genre", "", "exact genre tag")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := url.Values{}
	if *q != "" {
		params.Set("q", *q)
	}
	if *genre != "" {
		params.Set("genre", *genre)
	}

	var resp listResponse
	if err := getJSON(baseURL+"/manhwa?"+params.Encode(), &resp); err != nil {
		return err
	}

	fmt.Printf("%d titles\n", resp.Total)
	for _, t := range resp.Items {
		fmt.Printf("  %s  %-30s  %-20s  %.1f  [%s]\n",
			t.ID, t.Name, t.Author, t.Rating, strings.Join(t.Genres, ", "))
	}
	return nil
}

func runShow(baseURL string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: show <title_id>")
	}

	var resp detailResponse
	if err := getJSON(baseURL+"/manhwa/"+url.PathEscape(args[0]), &resp); err != nil {
		return err
	}

	t := resp.Title
	fmt.Printf("%s by %s (%s, %.1f)\n", t.Name, t.Author, t.Status, t.Rating)
	if t.Description != "" {
		fmt.Println(t.Description)
	}
	fmt.Printf("%d chapters:\n", len(resp.Chapters))
	for _, ch := range resp.Chapters {
		fmt.Printf("  %3d  %-30s  %d pages  %s\n", ch.Number, ch.Title, len(ch.Pages), ch.ID)
	}
	return nil
}

func runRead(baseURL string, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	page := fs.Int("page", 0, "0-based page index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("usage: read <title_id> <chapter_id> [-page N]")
	}

	u := fmt.Sprintf("%s/manhwa/%s/chapters/%s?page=%d",
		baseURL, url.PathEscape(rest[0]), url.PathEscape(rest[1]), *page)

	var resp readResponse
	if err := getJSON(u, &resp); err != nil {
		return err
	}

	fmt.Printf("Chapter %d: %s\n", resp.Chapter.Number, resp.Chapter.Title)
	if resp.Empty {
		fmt.Println(resp.Message)
	} else {
		fmt.Printf("page %d of %d: %s\n", resp.PageIndex+1, resp.PageCount, resp.Page)
	}
	if resp.Complete {
		fmt.Println("chapter complete")
	}
	if resp.PrevChapterID != "" {
		fmt.Printf("prev chapter: %s\n", resp.PrevChapterID)
	}
	if resp.NextChapterID != "" {
		fmt.Printf("next chapter: %s\n", resp.NextChapterID)
	}
	return nil
}

func runGenres(baseURL string) error {
	var resp genresResponse
	if err := getJSON(baseURL+"/genres", &resp); err != nil {
		return err
	}
	for _, g := range resp.Genres {
		fmt.Println(g)
	}
	return nil
}

func getJSON(u string, out any) error {
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error != "" {
			return fmt.Errorf("%s (%s)", body.Error, resp.Status)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printUsage() {
	fmt.Println(`manhwahub CLI

usage:
  cli [-api URL] list [-q text] [-genre tag]
  cli [-api URL] show <title_id>
  cli [-api URL] read <title_id> <chapter_id> [-page N]
  cli [-api URL] genres`)
}
