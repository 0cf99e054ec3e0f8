package reels

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/infra/api"
)

func TestFetchReelsPage_RequestShapeAndMapping(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/feed/reels", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"reels": []map[string]any{
				{"id": 7, "videoUrl": " https://cdn/7.mp4 ", "likes": 3, "isLiked": false},
				{"id": "abc", "videoUrl": "https://cdn/abc.mp4", "likes": -2, "isLiked": true},
			},
			"page":       2,
			"totalPages": 4,
		})
	})
	svc := NewReelService(api.NewHandlerClient(h, nil))

	page, err := svc.FetchReelsPage(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 4, page.TotalPages)
	require.Equal(t, []domain.Reel{
		{ID: "7", VideoURL: "https://cdn/7.mp4", Likes: 3},
		{ID: "abc", VideoURL: "https://cdn/abc.mp4", Likes: 0, IsLiked: true},
	}, page.Reels)
}

func TestFetchReelsPage_ErrorsAreFetchErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		},
		"decode": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewReelService(api.NewHandlerClient(h, nil))
			_, err := svc.FetchReelsPage(context.Background(), 1)
			var fe *domain.FetchError
			require.True(t, errors.As(err, &fe), "want FetchError, got %v", err)
			if name == "status" {
				require.Equal(t, http.StatusBadGateway, fe.Status)
			}
		})
	}
}

func TestFetchReelsPage_RejectsPageZero(t *testing.T) {
	svc := NewReelService(api.NewHandlerClient(http.NotFoundHandler(), nil))
	_, err := svc.FetchReelsPage(context.Background(), 0)
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestLikeReel_ReturnsServerValues(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/feed/reels/7/like", r.URL.Path)
		_, _ = w.Write([]byte(`{"reel":{"id":7,"videoUrl":"https://cdn/7.mp4","likes":4,"isLiked":true}}`))
	})
	svc := NewReelService(api.NewHandlerClient(h, nil))

	got, err := svc.LikeReel(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, domain.Reel{ID: "7", VideoURL: "https://cdn/7.mp4", Likes: 4, IsLiked: true}, got)
}

func TestLikeReel_OnlyStatus200Succeeds(t *testing.T) {
	for _, code := range []int{http.StatusAccepted, http.StatusNotFound, http.StatusInternalServerError} {
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"reel":{"likes":4,"isLiked":true}}`))
		})
		svc := NewReelService(api.NewHandlerClient(h, nil))
		_, err := svc.LikeReel(context.Background(), "7")
		var le *domain.LikeError
		require.ErrorAs(t, err, &le, "code %d", code)
		require.Equal(t, code, le.Status)
	}
}

func TestLikeReel_MissingReelInBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	svc := NewReelService(api.NewHandlerClient(h, nil))
	_, err := svc.LikeReel(context.Background(), "7")
	var le *domain.LikeError
	require.ErrorAs(t, err, &le)
}

func TestLikeReel_FallsBackToRequestedID(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reel":{"likes":1,"isLiked":true}}`))
	})
	svc := NewReelService(api.NewHandlerClient(h, nil))
	got, err := svc.LikeReel(context.Background(), "12")
	require.NoError(t, err)
	require.Equal(t, "12", got.ID)
}
