package engine

import (
	"fmt"
	"net/url"
)

// SearchRecord is one entry of a search (or trending) result listing.
// ID is always a non-empty numeric string; every other field degrades
// to "" when its source node is missing.
type SearchRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	EmbedURL    string `json:"embed_url"`
	Duration    string `json:"duration"`
	PreviewClip string `json:"preview_clip"`
}

// DetailRecord is the full metadata for a single video page.
// Each field is extracted independently and defaults to its zero
// value (empty string or empty list) when absent from the markup.
type DetailRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Thumbnail      string   `json:"thumbnail"`
	Duration       string   `json:"duration"`
	Categories     []string `json:"categories"`
	Tags           []string `json:"tags"`
	Performers     []string `json:"performers"`
	EmbedURL       string   `json:"embed_url"`
	PreviewClip    string   `json:"preview_clip"`
	DownloadLink   string   `json:"download_link"`
	SpritePreviews []string `json:"sprite_previews"` // reserved, always empty
}

// MediaSource is one entry of the player "sources" list embedded in
// an inline script on the detail page.
type MediaSource struct {
	Src     string `json:"src"`
	Type    string `json:"type"`
	Quality string `json:"quality,omitempty"`
}

// SearchResponse is the /search payload.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchRecord `json:"results"`
}

// TrendingResponse is the /trending payload.
type TrendingResponse struct {
	Results []SearchRecord `json:"results"`
	Count   int            `json:"count"`
}

// SearchURL builds the upstream search page URL. page <= 1 omits the
// paging parameter.
func SearchURL(query string, page int) string {
	u := cfg.BaseURL + "/?k=" + url.QueryEscape(query)
	if page > 1 {
		u += fmt.Sprintf("&p=%d", page)
	}
	return u
}

// VideoURL builds the upstream detail page URL for a video id.
func VideoURL(id string) string {
	return cfg.BaseURL + "/video" + id
}

// TrendingURL is the upstream front page.
func TrendingURL() string {
	return cfg.BaseURL + "/"
}

// EmbedURL derives the embed player URL from a video id.
// An empty id yields an empty embed URL.
func EmbedURL(id string) string {
	if id == "" {
		return ""
	}
	return cfg.BaseURL + "/embedframe/" + id
}
