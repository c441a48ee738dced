package engine

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// trendingMax caps the number of front-page blocks returned by /trending.
const trendingMax = 20

// videoIDRE matches the numeric id in listing hrefs of the form
// "/video12345/slug" or the newer "/video.12345/slug".
var videoIDRE = regexp.MustCompile(`/video\.?(\d+)`)

// ExtractVideoID pulls the numeric video id out of a listing href.
// Returns "" when the href carries no id.
func ExtractVideoID(href string) string {
	m := videoIDRE.FindStringSubmatch(href)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// ExtractSearchResults walks every result block of a search page in
// document order. Blocks without an extractable numeric id are dropped
// silently; all other fields default to "" on absence. Extraction
// never fails: a worst-case document yields an empty slice.
func ExtractSearchResults(doc *goquery.Document) []SearchRecord {
	records := []SearchRecord{}
	doc.Find("div.thumb-block").Each(func(_ int, block *goquery.Selection) {
		if rec, ok := extractSearchBlock(block); ok {
			records = append(records, rec)
		}
	})
	metrics.RecordsExtracted.Add(int64(len(records)))
	return records
}

// ExtractTrending extracts the first trendingMax blocks of the front page.
func ExtractTrending(doc *goquery.Document) []SearchRecord {
	records := ExtractSearchResults(doc)
	if len(records) > trendingMax {
		records = records[:trendingMax]
	}
	return records
}

// extractSearchBlock extracts one result block. The boolean is false
// when the block has no anchor or no numeric id, meaning the whole
// block is skipped rather than reported as a partial failure.
func extractSearchBlock(block *goquery.Selection) (SearchRecord, bool) {
	link := block.Find("a.img").First()
	if link.Length() == 0 {
		link = block.Find("a").First()
	}
	if link.Length() == 0 {
		return SearchRecord{}, false
	}

	href, ok := link.Attr("href")
	if !ok {
		return SearchRecord{}, false
	}
	id := ExtractVideoID(strings.TrimSpace(href))
	if id == "" {
		return SearchRecord{}, false
	}

	title := strings.TrimSpace(link.AttrOr("title", ""))
	if title == "" {
		title = CleanHTML(link.Text())
	}

	thumb := ""
	if img := block.Find("img").First(); img.Length() > 0 {
		thumb = img.AttrOr("data-src", "")
		if thumb == "" {
			thumb = img.AttrOr("src", "")
		}
	}

	duration := strings.TrimSpace(block.Find("span.duration").First().Text())

	return SearchRecord{
		ID:        id,
		Title:     title,
		Thumbnail: thumb,
		EmbedURL:  EmbedURL(id),
		Duration:  duration,
		// The site exposes no cheap preview clip; the thumbnail stands in.
		PreviewClip: thumb,
	}, true
}
