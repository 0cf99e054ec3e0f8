package app

import (
	"context"

	"github.com/CrestNiraj12/terminalreels/domain"
)

// ReelService fetches reel pages and records likes on the feed backend.
type ReelService interface {
	// FetchReelsPage returns one numbered page of reels. Pages start at 1.
	FetchReelsPage(ctx context.Context, page int) (domain.ReelPage, error)

	// LikeReel likes a reel and returns the server's updated copy.
	LikeReel(ctx context.Context, id string) (domain.Reel, error)
}

// StockService searches a third-party stock video catalogue.
type StockService interface {
	// SearchVideos returns one page of portrait videos matching query.
	SearchVideos(ctx context.Context, query string, page, perPage int) (domain.StockPage, error)
}
