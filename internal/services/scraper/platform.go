package scraper

import (
	"context"
	"regexp"
	"time"
)

// Post is the unified shape for a scraped social media post, independent of
// which platform it came from.
type Post struct {
	ID            string
	Platform      string
	Caption       string
	ImageURL      string
	VideoURL      string
	VideoDuration int
	ThumbnailURL  string
	OwnerUsername string
	OwnerName     string
	OwnerAvatar   string
	OwnerID       string
	Likes         int
	Comments      int
	PostedAt      time.Time
}

// Scraper fetches a post from a single platform.
type Scraper interface {
	Platform() string
	Scrape(ctx context.Context, postURL string) (*Post, error)
}

const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
)

var (
	// Post paths may be prefixed with the owner's username
	// (instagram.com/<user>/reels/<shortcode>).
	instagramURLRe = regexp.MustCompile(`instagram\.com/(?:[A-Za-z0-9_.]+/)?(p|reels?|tv)/`)
	tiktokURLRe    = regexp.MustCompile(`tiktok\.com/`)
	youtubeURLRe   = regexp.MustCompile(`(youtube\.com/(watch|shorts)|youtu\.be/)`)
)

// DetectPlatform identifies which platform a post URL belongs to.
// Returns ErrUnsupportedPlatform for anything unrecognized.
func DetectPlatform(u string) (string, error) {
	switch {
	case instagramURLRe.MatchString(u):
		return PlatformInstagram, nil
	case tiktokURLRe.MatchString(u):
		return PlatformTikTok, nil
	case youtubeURLRe.MatchString(u):
		return PlatformYouTube, nil
	default:
		return "", ErrUnsupportedPlatform
	}
}

// PlatformInfo describes a supported platform for the discovery endpoint.
type PlatformInfo struct {
	Name      string   `json:"name"`
	URLFormat []string `json:"url_formats"`
}

// SupportedPlatforms lists every platform the scrapers can handle.
func SupportedPlatforms() []PlatformInfo {
	return []PlatformInfo{
		{
			Name: PlatformInstagram,
			URLFormat: []string{
				"https://www.instagram.com/p/{shortcode}/",
				"https://www.instagram.com/reel/{shortcode}/",
				"https://www.instagram.com/tv/{shortcode}/",
			},
		},
		{
			Name: PlatformTikTok,
			URLFormat: []string{
				"https://www.tiktok.com/@{user}/video/{id}",
				"https://vm.tiktok.com/{short}/",
			},
		},
		{
			Name: PlatformYouTube,
			URLFormat: []string{
				"https://www.youtube.com/watch?v={id}",
				"https://www.youtube.com/shorts/{id}",
				"https://youtu.be/{id}",
			},
		},
	}
}
