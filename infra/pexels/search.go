package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/infra/api"
)

// stockService implements app.StockService using the Pexels video search API.
type stockService struct {
	client *api.Client
}

// NewStockService creates a StockService backed by Pexels. The client must
// carry the API key provider.
func NewStockService(client *api.Client) *stockService {
	return &stockService{client: client}
}

// pexelsSearch is the subset of the search response we care about.
type pexelsSearch struct {
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalResults int           `json:"total_results"`
	NextPage     string        `json:"next_page"`
	Videos       []pexelsVideo `json:"videos"`
}

type pexelsVideo struct {
	ID       int64  `json:"id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	URL      string `json:"url"`
	Image    string `json:"image"`
	Duration int    `json:"duration"`
	User     struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"user"`
	VideoFiles []struct {
		ID       int64  `json:"id"`
		Quality  string `json:"quality"`
		FileType string `json:"file_type"`
		Width    *int   `json:"width"`
		Height   *int   `json:"height"`
		Link     string `json:"link"`
	} `json:"video_files"`
	VideoPictures []struct {
		ID      int64  `json:"id"`
		Picture string `json:"picture"`
		Nr      int    `json:"nr"`
	} `json:"video_pictures"`
}

func (s *stockService) SearchVideos(ctx context.Context, query string, page, perPage int) (domain.StockPage, error) {
	op := fmt.Sprintf("search stock videos %q page %d", query, page)

	q := url.Values{}
	q.Set("query", strings.TrimSpace(query))
	q.Set("orientation", "portrait")
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	data, err := s.client.Get(ctx, "/videos/search/?"+q.Encode())
	if err != nil {
		return domain.StockPage{}, &domain.FetchError{Op: op, Status: api.StatusCode(err), Err: err}
	}

	var raw pexelsSearch
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.StockPage{}, &domain.FetchError{Op: op, Err: fmt.Errorf("parsing search: %w", err)}
	}

	return mapSearch(raw), nil
}

func mapSearch(raw pexelsSearch) domain.StockPage {
	videos := make([]domain.StockVideo, 0, len(raw.Videos))
	for _, v := range raw.Videos {
		videos = append(videos, mapVideo(v))
	}
	return domain.StockPage{
		Videos:       videos,
		Page:         raw.Page,
		PerPage:      raw.PerPage,
		TotalResults: raw.TotalResults,
		NextPage:     raw.NextPage,
	}
}

func mapVideo(v pexelsVideo) domain.StockVideo {
	files := make([]domain.StockVideoFile, 0, len(v.VideoFiles))
	for _, f := range v.VideoFiles {
		link := strings.TrimSpace(f.Link)
		if link == "" {
			continue
		}
		files = append(files, domain.StockVideoFile{
			ID:       f.ID,
			Quality:  f.Quality,
			FileType: f.FileType,
			Width:    deref(f.Width),
			Height:   deref(f.Height),
			Link:     link,
		})
	}
	pictures := make([]string, 0, len(v.VideoPictures))
	for _, p := range v.VideoPictures {
		if p.Picture != "" {
			pictures = append(pictures, p.Picture)
		}
	}
	return domain.StockVideo{
		ID:       v.ID,
		Width:    v.Width,
		Height:   v.Height,
		URL:      v.URL,
		Image:    v.Image,
		Duration: v.Duration,
		User: domain.StockUser{
			ID:   v.User.ID,
			Name: v.User.Name,
			URL:  v.User.URL,
		},
		Files:    files,
		Pictures: pictures,
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
