package extract

import (
	"testing"
)

func TestBrandExtractor_Defaults(t *testing.T) {
	html := `<body><p>No styling anywhere in this email.</p></body>`
	colors := NewBrandExtractor().Run(parseDoc(t, html), html)

	if colors.Primary != DefaultPrimaryColor {
		t.Errorf("expected default primary %s, got %s", DefaultPrimaryColor, colors.Primary)
	}
	if colors.Accent != DefaultAccentColor {
		t.Errorf("expected default accent %s, got %s", DefaultAccentColor, colors.Accent)
	}
}

func TestBrandExtractor_RawCSSDeclarations(t *testing.T) {
	// Raw pass operates on the original HTML text, including style blocks
	// that sanitization would have removed.
	html := `<head><style>.btn{background-color:#FF5733}.text{color:#333333}</style></head><body><p>Hi</p></body>`
	colors := NewBrandExtractor().Run(parseDoc(t, `<body><p>Hi</p></body>`), html)

	if colors.Primary != "#FF5733" {
		t.Errorf("expected primary #FF5733, got %s", colors.Primary)
	}
	if colors.Accent != "#333333" {
		t.Errorf("expected accent #333333, got %s", colors.Accent)
	}
}

func TestBrandExtractor_ThreeDigitHex(t *testing.T) {
	html := `<body><p style="color:#ABC">Short hex</p></body>`
	colors := NewBrandExtractor().Run(parseDoc(t, html), html)

	if colors.Primary != "#ABC" {
		t.Errorf("expected primary #ABC, got %s", colors.Primary)
	}
}

func TestBrandExtractor_InlineStyleWinsPrimary(t *testing.T) {
	// The raw-CSS pass finds #111111 first, but the first inline-styled
	// element overrides the primary slot.
	html := `<head><style>a{color:#111111}p{color:#222222}</style></head>
	<body><div style="background-color:#6C40EE"><p>Header</p></div></body>`

	colors := NewBrandExtractor().Run(parseDoc(t, html), html)

	if colors.Primary != "#6C40EE" {
		t.Errorf("inline style should win primary, got %s", colors.Primary)
	}
	if colors.Accent != "#222222" {
		t.Errorf("accent should come from the raw pass, got %s", colors.Accent)
	}
}

func TestBrandExtractor_InlineStyleWithoutHexIgnored(t *testing.T) {
	html := `<body><div style="color:red"><p>Named colors carry no hex</p></div></body>`
	colors := NewBrandExtractor().Run(parseDoc(t, html), html)

	if colors.Primary != DefaultPrimaryColor {
		t.Errorf("named color should not override primary, got %s", colors.Primary)
	}
}

func TestBrandExtractor_NilDocument(t *testing.T) {
	colors := NewBrandExtractor().Run(nil, `<p style="color:#123456">x</p>`)
	if colors.Primary != "#123456" {
		t.Errorf("raw pass should still run without a document, got %s", colors.Primary)
	}
}
