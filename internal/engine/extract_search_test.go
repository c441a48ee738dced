package engine

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestMain(m *testing.M) {
	Init(Config{BaseURL: "https://tube.example"})
	os.Exit(m.Run())
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/video12345/some-title", "12345"},
		{"/video.67890/other-title", "67890"},
		{"https://tube.example/video777/abc", "777"},
		{"/profiles/someone", ""},
		{"", ""},
		{"/videos/category", ""},
	}
	for _, tt := range tests {
		if got := ExtractVideoID(tt.href); got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestExtractSearchResults(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantIDs []string
	}{
		{
			name: "two blocks one without href",
			html: `<html><body>
				<div class="thumb-block">
					<a class="img" href="/video12345/test-clip" title="Test Clip"><img data-src="https://cdn.example/1.jpg"></a>
					<span class="duration">10 min</span>
				</div>
				<div class="thumb-block">
					<a class="img" title="No Link Here"><img src="https://cdn.example/2.jpg"></a>
				</div>
			</body></html>`,
			wantIDs: []string{"12345"},
		},
		{
			name: "href without numeric id dropped",
			html: `<html><body>
				<div class="thumb-block"><a href="/profiles/uploader" title="Uploader"></a></div>
				<div class="thumb-block"><a href="/video99/ok" title="Kept"></a></div>
			</body></html>`,
			wantIDs: []string{"99"},
		},
		{
			name: "fallback to plain anchor when no img link",
			html: `<html><body>
				<div class="thumb-block"><p class="title"><a href="/video.314/pi" title="Pi">Pi</a></p></div>
			</body></html>`,
			wantIDs: []string{"314"},
		},
		{
			name:    "no blocks",
			html:    `<html><body><p>nothing here</p></body></html>`,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSearchResults(mustDoc(t, tt.html))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantIDs))
			}
			for i, rec := range got {
				if rec.ID != tt.wantIDs[i] {
					t.Errorf("record %d id = %q, want %q", i, rec.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestExtractSearchResultsFieldDefaults(t *testing.T) {
	html := `<html><body>
		<div class="thumb-block">
			<a class="img" href="/video555/bare" title="Bare Block"></a>
		</div>
	</body></html>`

	got := ExtractSearchResults(mustDoc(t, html))
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	rec := got[0]
	if rec.ID != "555" {
		t.Errorf("id = %q, want 555", rec.ID)
	}
	if rec.Thumbnail != "" || rec.Duration != "" || rec.PreviewClip != "" {
		t.Errorf("missing fields must default to empty, got thumb=%q duration=%q preview=%q",
			rec.Thumbnail, rec.Duration, rec.PreviewClip)
	}
	if rec.EmbedURL != "https://tube.example/embedframe/555" {
		t.Errorf("embed_url = %q", rec.EmbedURL)
	}
}

func TestExtractSearchResultsThumbnailFallback(t *testing.T) {
	lazy := `<div class="thumb-block"><a class="img" href="/video1/a" title="A"><img data-src="lazy.jpg" src="placeholder.gif"></a></div>`
	plain := `<div class="thumb-block"><a class="img" href="/video2/b" title="B"><img src="plain.jpg"></a></div>`

	got := ExtractSearchResults(mustDoc(t, "<html><body>"+lazy+plain+"</body></html>"))
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Thumbnail != "lazy.jpg" {
		t.Errorf("lazy-load attribute must win, got %q", got[0].Thumbnail)
	}
	if got[1].Thumbnail != "plain.jpg" {
		t.Errorf("src fallback, got %q", got[1].Thumbnail)
	}
}

func TestExtractSearchResultsDocumentOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	ids := []string{"3", "1", "2"}
	for _, id := range ids {
		sb.WriteString(`<div class="thumb-block"><a href="/video` + id + `/x" title="x"></a></div>`)
	}
	sb.WriteString("</body></html>")

	got := ExtractSearchResults(mustDoc(t, sb.String()))
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("position %d: id = %q, want %q (document order must be preserved)", i, got[i].ID, id)
		}
	}
}

func TestExtractTrendingCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		sb.WriteString(`<div class="thumb-block"><a href="/video` + strings.Repeat("1", i+1) + `/x" title="x"></a></div>`)
	}
	sb.WriteString("</body></html>")

	got := ExtractTrending(mustDoc(t, sb.String()))
	if len(got) != trendingMax {
		t.Errorf("trending must cap at %d, got %d", trendingMax, len(got))
	}
}
