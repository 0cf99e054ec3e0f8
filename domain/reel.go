package domain

// Reel is a single short video with engagement metadata.
type Reel struct {
	ID       string
	VideoURL string
	Likes    int
	IsLiked  bool // True if the viewer has liked this reel
}

// ReelPage is one numbered batch of reels as returned by the backend.
type ReelPage struct {
	Reels      []Reel
	Page       int
	TotalPages int
}

// HasMore reports whether the backend has pages after this one.
func (p ReelPage) HasMore() bool {
	return p.Page < p.TotalPages
}

// FlattenReels concatenates the reels of every page in order.
func FlattenReels(pages []ReelPage) []Reel {
	n := 0
	for _, p := range pages {
		n += len(p.Reels)
	}
	out := make([]Reel, 0, n)
	for _, p := range pages {
		out = append(out, p.Reels...)
	}
	return out
}

// PatchLike returns a copy of pages where the reel with the given id carries
// the server's likes/isLiked values. Pages and reels that do not contain the
// id are shared with the input, so the input is never modified.
func PatchLike(pages []ReelPage, id string, likes int, isLiked bool) ([]ReelPage, bool) {
	out := make([]ReelPage, len(pages))
	copy(out, pages)
	found := false
	for i, p := range pages {
		idx := -1
		for j, r := range p.Reels {
			if r.ID == id {
				idx = j
				break
			}
		}
		if idx < 0 {
			continue
		}
		reels := make([]Reel, len(p.Reels))
		copy(reels, p.Reels)
		reels[idx].Likes = likes
		reels[idx].IsLiked = isLiked
		p.Reels = reels
		out[i] = p
		found = true
	}
	return out, found
}
