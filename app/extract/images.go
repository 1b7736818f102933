package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractImages collects content images from the element's subtree. Tracking
// pixels and sub-10px beacons are skipped; protocol-relative sources are
// upgraded to https, relative ones dropped.
func extractImages(sel *goquery.Selection) []Image {
	images := []Image{}

	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			src, _ = img.Attr("data-src")
		}
		src = strings.TrimSpace(src)
		if src == "" {
			return
		}

		width := attrInt(img, "width")
		height := attrInt(img, "height")
		if (width != nil && *width < 10) || (height != nil && *height < 10) {
			return
		}

		lowerSrc := strings.ToLower(src)
		if strings.Contains(lowerSrc, "tracking") || strings.Contains(lowerSrc, "pixel") {
			return
		}

		src = normalizeURL(src)
		if src == "" {
			return
		}

		alt, _ := img.Attr("alt")
		alt = strings.TrimSpace(alt)

		images = append(images, Image{
			Src:     src,
			Alt:     alt,
			Caption: alt,
			Width:   width,
			Height:  height,
			Type:    classifyImage(strings.ToLower(alt), lowerSrc),
		})
	})

	return images
}

func attrInt(sel *goquery.Selection, name string) *int {
	raw, ok := sel.Attr(name)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	if err != nil {
		return nil
	}
	return &value
}

func classifyImage(lowerAlt, lowerSrc string) ImageType {
	combined := lowerAlt + " " + lowerSrc
	switch {
	case strings.Contains(combined, "chart"), strings.Contains(combined, "graph"), strings.Contains(combined, "data"):
		return ImageChart
	case strings.Contains(combined, "logo"):
		return ImageLogo
	case strings.Contains(combined, "product"), strings.Contains(combined, "screenshot"):
		return ImageProduct
	default:
		return ImageContent
	}
}
