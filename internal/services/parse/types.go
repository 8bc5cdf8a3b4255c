package parse

import (
	"time"
	"unicode/utf8"

	"github.com/AraTman/recipe-parser-api/internal/extract"
)

// Author identifies the creator of the source post.
type Author struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ParsedRecipe is the full recipe payload served by the API: the extracted
// recipe plus metadata carried over from the source post.
type ParsedRecipe struct {
	extract.Recipe
	Description   string     `json:"description,omitempty"`
	SourceURL     string     `json:"source_url,omitempty"`
	Platform      string     `json:"platform,omitempty"`
	Author        *Author    `json:"author,omitempty"`
	Likes         int        `json:"likes,omitempty"`
	Comments      int        `json:"comments,omitempty"`
	VideoDuration int        `json:"video_duration,omitempty"`
	Thumbnail     string     `json:"thumbnail,omitempty"`
	PostedAt      *time.Time `json:"posted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

const descriptionExcerptLen = 200

// excerpt shortens a caption to the first 200 runes for the description field.
func excerpt(caption string) string {
	if utf8.RuneCountInString(caption) <= descriptionExcerptLen {
		return caption
	}
	runes := []rune(caption)
	return string(runes[:descriptionExcerptLen]) + "..."
}
