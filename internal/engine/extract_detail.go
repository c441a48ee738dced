package engine

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractDetail extracts the full metadata record from a video detail
// page. Every field is looked up independently and degrades to its
// empty value when the markup changed or the node is missing; partial
// extraction is not an error and the function never fails.
func ExtractDetail(doc *goquery.Document, id string) DetailRecord {
	title := strings.TrimSpace(doc.Find("h2.title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	if title == "" {
		title = "No title"
	}

	thumb := doc.Find(`meta[property="og:image"]`).AttrOr("content", "")
	duration := strings.TrimSpace(doc.Find("span.duration").First().Text())

	return DetailRecord{
		ID:             id,
		Title:          title,
		Thumbnail:      thumb,
		Duration:       duration,
		Categories:     anchorTexts(doc, "div#categories li a"),
		Tags:           anchorTexts(doc, "div#tags li a"),
		Performers:     anchorTexts(doc, "div#pornstars li a"),
		EmbedURL:       EmbedURL(id),
		PreviewClip:    thumb,
		DownloadLink:   extractDownloadLink(doc),
		SpritePreviews: []string{},
	}
}

// anchorTexts returns the trimmed text of all anchors matching sel, in
// document order. An absent container yields an empty list.
func anchorTexts(doc *goquery.Document, sel string) []string {
	out := []string{}
	doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
		out = append(out, strings.TrimSpace(a.Text()))
	})
	return out
}

// Legacy player pages set the stream URL through quality setter calls
// instead of a sources list.
var (
	legacyHighRE = regexp.MustCompile(`setVideoUrlHigh\('([^']+)'\)`)
	legacyLowRE  = regexp.MustCompile(`setVideoUrlLow\('([^']+)'\)`)
)

// extractDownloadLink scans inline scripts for the player sources list
// and returns the first video/mp4 source. When no script parses, the
// legacy quality setters are tried. Every failure mode of this
// sub-procedure collapses to "" — a format change upstream must never
// abort the record.
func extractDownloadLink(doc *goquery.Document) string {
	link := ""
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, "sources") {
			return true
		}
		sources, ok := ParseSourcesScript([]byte(text))
		if !ok {
			return true
		}
		if mp4 := firstMP4(sources); mp4 != "" {
			link = mp4
			return false
		}
		return true
	})
	if link != "" {
		return link
	}
	return legacySetterLink(doc)
}

// firstMP4 returns the source URL of the first video/mp4 entry, or "".
func firstMP4(sources []MediaSource) string {
	for _, s := range sources {
		if s.Type == "video/mp4" {
			return s.Src
		}
	}
	return ""
}

// legacySetterLink scans all inline scripts for setVideoUrlHigh, then
// setVideoUrlLow.
func legacySetterLink(doc *goquery.Document) string {
	var scripts strings.Builder
	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		scripts.WriteString(script.Text())
		scripts.WriteByte('\n')
	})
	body := scripts.String()
	if m := legacyHighRE.FindStringSubmatch(body); len(m) >= 2 {
		return m[1]
	}
	if m := legacyLowRE.FindStringSubmatch(body); len(m) >= 2 {
		return m[1]
	}
	return ""
}
