package extract

import (
	"testing"
)

func imagesFromHTML(t *testing.T, html string) []Image {
	t.Helper()
	doc := parseDoc(t, html)
	return extractImages(doc.Find("body"))
}

func TestExtractImages_CollectsSrcAndDataSrc(t *testing.T) {
	html := `
	<img src="https://example.com/a.png" alt="First">
	<img data-src="https://example.com/b.png" alt="Lazy loaded">`

	images := imagesFromHTML(t, html)

	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if images[1].Src != "https://example.com/b.png" {
		t.Errorf("data-src not picked up: %s", images[1].Src)
	}
}

func TestExtractImages_SkipsTrackingPixels(t *testing.T) {
	html := `
	<img src="https://example.com/tracking.gif" alt="">
	<img src="https://example.com/open-pixel.png" alt="">
	<img src="https://example.com/tiny.png" width="1" height="1">
	<img src="https://example.com/photo.jpg" alt="Photo" width="600px" height="400">`

	images := imagesFromHTML(t, html)

	if len(images) != 1 {
		t.Fatalf("expected 1 surviving image, got %d", len(images))
	}
	if images[0].Width == nil || *images[0].Width != 600 {
		t.Errorf("px-suffixed width not parsed: %v", images[0].Width)
	}
	if images[0].Height == nil || *images[0].Height != 400 {
		t.Errorf("height not parsed: %v", images[0].Height)
	}
}

func TestExtractImages_NormalizesSrc(t *testing.T) {
	html := `
	<img src="//cdn.example.com/x.png" alt="CDN">
	<img src="/relative/y.png" alt="Relative">`

	images := imagesFromHTML(t, html)

	if len(images) != 1 {
		t.Fatalf("expected relative src dropped, got %d images", len(images))
	}
	if images[0].Src != "https://cdn.example.com/x.png" {
		t.Errorf("protocol-relative src not upgraded: %s", images[0].Src)
	}
}

func TestExtractImages_CaptionDefaultsToAlt(t *testing.T) {
	images := imagesFromHTML(t, `<img src="https://example.com/a.png" alt="  A caption  ">`)

	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	if images[0].Alt != "A caption" || images[0].Caption != "A caption" {
		t.Errorf("alt/caption mismatch: alt=%q caption=%q", images[0].Alt, images[0].Caption)
	}
}

func TestClassifyImage(t *testing.T) {
	tests := []struct {
		alt  string
		src  string
		want ImageType
	}{
		{"revenue chart", "https://example.com/a.png", ImageChart},
		{"", "https://example.com/growth-graph.png", ImageChart},
		{"quarterly data", "https://example.com/a.png", ImageChart},
		{"company logo", "https://example.com/a.png", ImageLogo},
		{"", "https://example.com/logo.png", ImageLogo},
		{"product shot", "https://example.com/a.png", ImageProduct},
		{"app screenshot", "https://example.com/a.png", ImageProduct},
		{"sunset", "https://example.com/a.png", ImageContent},
	}

	for _, tt := range tests {
		got := classifyImage(tt.alt, tt.src)
		if got != tt.want {
			t.Errorf("classifyImage(%q, %q) = %s, want %s", tt.alt, tt.src, got, tt.want)
		}
	}
}
