//go:build smoke

package reels

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/terminalreels/infra/api"
)

func TestSmoke_FetchFirstPage(t *testing.T) {
	base := strings.TrimSpace(os.Getenv("REELS_BACKEND_URL"))
	if base == "" {
		t.Skip("REELS_BACKEND_URL not set")
	}
	svc := NewReelService(api.NewClient(base, nil, 15*time.Second, nil))

	page, err := svc.FetchReelsPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	if page.Page != 1 {
		t.Fatalf("unexpected page number: %d", page.Page)
	}
}
