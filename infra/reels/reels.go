package reels

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/infra/api"
)

// reelService implements app.ReelService against the feed backend.
type reelService struct {
	client *api.Client
}

// NewReelService creates a ReelService backed by the feed backend.
func NewReelService(client *api.Client) *reelService {
	return &reelService{client: client}
}

// backendReel is the backend's reel entity.
type backendReel struct {
	ID       flexID `json:"id"`
	VideoURL string `json:"videoUrl"`
	Likes    int    `json:"likes"`
	IsLiked  bool   `json:"isLiked"`
}

type backendPage struct {
	Reels      []backendReel `json:"reels"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type likeResponse struct {
	Reel *backendReel `json:"reel"`
}

// flexID accepts both numeric and string identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reel id: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

func (s *reelService) FetchReelsPage(ctx context.Context, page int) (domain.ReelPage, error) {
	op := fmt.Sprintf("fetch reels page %d", page)
	if page < 1 {
		return domain.ReelPage{}, &domain.FetchError{Op: op, Err: errors.New("page must be >= 1")}
	}

	path := "/api/feed/reels?page=" + strconv.Itoa(page)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.ReelPage{}, &domain.FetchError{Op: op, Status: api.StatusCode(err), Err: err}
	}

	var raw backendPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.ReelPage{}, &domain.FetchError{Op: op, Err: fmt.Errorf("parsing reels: %w", err)}
	}

	return mapPage(raw), nil
}

func (s *reelService) LikeReel(ctx context.Context, id string) (domain.Reel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Reel{}, &domain.LikeError{Err: errors.New("empty reel id")}
	}

	path := fmt.Sprintf("/api/feed/reels/%s/like", url.PathEscape(id))
	status, data, err := s.client.Put(ctx, path, nil)
	if err != nil {
		return domain.Reel{}, &domain.LikeError{ReelID: id, Status: status, Err: err}
	}
	// Other 2xx codes are not a confirmed like.
	if status != http.StatusOK {
		return domain.Reel{}, &domain.LikeError{ReelID: id, Status: status, Err: domain.ErrUnexpectedStatus}
	}

	var resp likeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.Reel{}, &domain.LikeError{ReelID: id, Status: status, Err: fmt.Errorf("parsing like response: %w", err)}
	}
	if resp.Reel == nil {
		return domain.Reel{}, &domain.LikeError{ReelID: id, Status: status, Err: errors.New("like response has no reel")}
	}

	r := mapReel(*resp.Reel)
	if r.ID == "" {
		r.ID = id
	}
	return r, nil
}

func mapPage(raw backendPage) domain.ReelPage {
	reels := make([]domain.Reel, 0, len(raw.Reels))
	for _, r := range raw.Reels {
		reels = append(reels, mapReel(r))
	}
	return domain.ReelPage{
		Reels:      reels,
		Page:       raw.Page,
		TotalPages: raw.TotalPages,
	}
}

func mapReel(r backendReel) domain.Reel {
	return domain.Reel{
		ID:       string(r.ID),
		VideoURL: strings.TrimSpace(r.VideoURL),
		Likes:    max(r.Likes, 0),
		IsLiked:  r.IsLiked,
	}
}
