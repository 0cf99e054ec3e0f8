package domain

// StockUser is the author credited for a stock video.
type StockUser struct {
	ID   int64
	Name string
	URL  string
}

// StockVideoFile is one rendition of a stock video.
type StockVideoFile struct {
	ID       int64
	Quality  string
	FileType string
	Width    int
	Height   int
	Link     string
}

// StockVideo is a video returned by the stock search API.
type StockVideo struct {
	ID       int64
	Width    int
	Height   int
	URL      string // Page on the stock provider
	Image    string // Poster image
	Duration int    // Seconds
	User     StockUser
	Files    []StockVideoFile
	Pictures []string
}

// PlayURL returns the first playable file link, or "" when there is none.
func (v StockVideo) PlayURL() string {
	if len(v.Files) == 0 {
		return ""
	}
	return v.Files[0].Link
}

// StockPage is one page of stock search results.
type StockPage struct {
	Videos       []StockVideo
	Page         int
	PerPage      int
	TotalResults int
	NextPage     string
}
