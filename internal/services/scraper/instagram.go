package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/AraTman/recipe-parser-api/internal/utils"
)

type InstagramScraper struct {
	proxyURL   string
	proxyKey   string
	httpClient *http.Client
}

func NewInstagramScraper(proxyURL, proxyKey string) *InstagramScraper {
	return &InstagramScraper{
		proxyURL:   proxyURL,
		proxyKey:   proxyKey,
		httpClient: &http.Client{},
	}
}

func (s *InstagramScraper) Platform() string {
	return PlatformInstagram
}

func IsInstagramURL(u string) bool {
	return instagramURLRe.MatchString(u)
}

var shortcodeRe = regexp.MustCompile(`instagram\.com/(?:[A-Za-z0-9_.]+/)?(p|reels?|tv)/([A-Za-z0-9-_]+)`)

func extractShortcode(u string) (string, error) {
	matches := shortcodeRe.FindStringSubmatch(u)
	if len(matches) < 3 {
		return "", ErrInvalidURL
	}
	return matches[2], nil
}

type graphqlResponse struct {
	Data struct {
		ShortcodeMedia struct {
			Shortcode        string `json:"shortcode"`
			DisplayURL       string `json:"display_url"`
			VideoURL         string `json:"video_url"`
			VideoDuration    float64 `json:"video_duration"`
			ThumbnailSrc     string `json:"thumbnail_src"`
			TakenAtTimestamp int64   `json:"taken_at_timestamp"`
			EdgeMediaToCaption struct {
				Edges []struct {
					Node struct {
						Text string `json:"text"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"edge_media_to_caption"`
			EdgeMediaPreviewLike struct {
				Count int `json:"count"`
			} `json:"edge_media_preview_like"`
			EdgeMediaToComment struct {
				Count int `json:"count"`
			} `json:"edge_media_to_comment"`
			Owner struct {
				ID            string `json:"id"`
				Username      string `json:"username"`
				FullName      string `json:"full_name"`
				ProfilePicURL string `json:"profile_pic_url"`
			} `json:"owner"`
		} `json:"xdt_shortcode_media"`
	} `json:"data"`
}

func (s *InstagramScraper) Scrape(ctx context.Context, postURL string) (*Post, error) {
	shortcode, err := extractShortcode(postURL)
	if err != nil {
		return nil, err
	}

	graphQLURL := fmt.Sprintf("https://www.instagram.com/api/graphql?variables={\"shortcode\":\"%s\"}&doc_id=10015901848480474", shortcode)

	reqBody := map[string]interface{}{
		"url":    graphQLURL,
		"method": "POST",
		"headers": map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"X-IG-App-ID":  "936619743392459",
		},
	}
	body, _ := json.Marshal(reqBody)

	// The proxy occasionally throttles; transient failures are retried with
	// backoff before giving up.
	data, err := utils.WithRetry(ctx, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", s.proxyURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", s.proxyKey)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == 429 {
			return nil, ErrRateLimited
		}
		// The proxy relays Instagram's 403 for private profiles
		if resp.StatusCode == 403 {
			return nil, ErrPrivateAccount
		}

		return io.ReadAll(resp.Body)
	}, utils.ScraperRetryConfig())
	if err != nil {
		return nil, err
	}

	var proxyResp struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(data, &proxyResp); err != nil {
		return nil, err
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal([]byte(proxyResp.Data), &gqlResp); err != nil {
		return nil, err
	}

	media := gqlResp.Data.ShortcodeMedia
	if media.Shortcode == "" {
		return nil, ErrPostNotFound
	}

	caption := ""
	if len(media.EdgeMediaToCaption.Edges) > 0 {
		caption = media.EdgeMediaToCaption.Edges[0].Node.Text
	}

	post := &Post{
		ID:            media.Shortcode,
		Platform:      PlatformInstagram,
		Caption:       caption,
		ImageURL:      media.DisplayURL,
		VideoURL:      media.VideoURL,
		VideoDuration: int(media.VideoDuration),
		ThumbnailURL:  media.ThumbnailSrc,
		OwnerUsername: media.Owner.Username,
		OwnerName:     media.Owner.FullName,
		OwnerAvatar:   media.Owner.ProfilePicURL,
		OwnerID:       media.Owner.ID,
		Likes:         media.EdgeMediaPreviewLike.Count,
		Comments:      media.EdgeMediaToComment.Count,
	}
	if media.TakenAtTimestamp > 0 {
		post.PostedAt = time.Unix(media.TakenAtTimestamp, 0).UTC()
	}

	return post, nil
}

func (s *InstagramScraper) GetPostCaption(ctx context.Context, postURL string) (string, error) {
	post, err := s.Scrape(ctx, postURL)
	if err != nil {
		return "", err
	}
	return post.Caption, nil
}
