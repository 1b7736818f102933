package extract

import (
	"time"
)

// Section classification, first match wins in segmentation order.
type SectionType string

const (
	SectionHeading           SectionType = "heading"
	SectionTextBlock         SectionType = "text_block"
	SectionArticleBlock      SectionType = "article_block"
	SectionImage             SectionType = "image"
	SectionImageWithCaption  SectionType = "image_with_caption"
	SectionArticleWithImages SectionType = "article_with_images"
	SectionDataTable         SectionType = "data_table"
	SectionDataHighlight     SectionType = "data_highlight"
	SectionLinkCollection    SectionType = "link_collection"
	SectionListContent       SectionType = "list_content"
)

type LinkType string

const (
	LinkVideo    LinkType = "video"
	LinkSocial   LinkType = "social"
	LinkArticle  LinkType = "article"
	LinkDownload LinkType = "download"
	LinkExternal LinkType = "external"
)

type ImageType string

const (
	ImageChart   ImageType = "chart"
	ImageLogo    ImageType = "logo"
	ImageProduct ImageType = "product"
	ImageContent ImageType = "content"
)

type Link struct {
	Text   string   `json:"text"`
	Href   string   `json:"href"`
	Target string   `json:"target"`
	Type   LinkType `json:"type"`
}

type Image struct {
	Src     string    `json:"src"`
	Alt     string    `json:"alt"`
	Caption string    `json:"caption"`
	Width   *int      `json:"width"`
	Height  *int      `json:"height"`
	Type    ImageType `json:"type"`
}

// Section is one structurally classified content unit. Order is 1-based and
// gapless in emission order; ID is derived from it.
type Section struct {
	ID        string      `json:"id"`
	Order     int         `json:"order"`
	Type      SectionType `json:"type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Level     int         `json:"level,omitempty"`
	TableData [][]string  `json:"tableData,omitempty"`
	Links     []Link      `json:"links"`
	Images    []Image     `json:"images"`
}

type BrandColors struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

type Metadata struct {
	Title         string      `json:"title"`
	PublishDate   time.Time   `json:"publishDate"`
	ReadTime      string      `json:"readTime"`
	BrandColors   BrandColors `json:"brandColors"`
	Source        string      `json:"source"`
	SourceLogo    string      `json:"sourceLogo"`
	SourceWebsite string      `json:"sourceWebsite"`
	ExtractedAt   time.Time   `json:"extractedAt"`
}

// SourceInfo identifies the publisher on whose behalf extraction runs.
type SourceInfo struct {
	Name    string
	Logo    string
	Website string
}

// Result is the facade output. When Success is false, the remaining fields
// hold the degraded fallback and Error holds the cause.
type Result struct {
	Success              bool      `json:"success"`
	Error                string    `json:"error,omitempty"`
	Metadata             Metadata  `json:"metadata"`
	Sections             []Section `json:"sections"`
	SearchText           string    `json:"searchText"`
	WordCount            int       `json:"wordCount"`
	Tags                 []string  `json:"tags"`
	ExtractionConfidence float64   `json:"extractionConfidence"`
}
