package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type TikTokScraper struct {
	apifyKey   string
	httpClient *http.Client
}

func NewTikTokScraper(apifyKey string) *TikTokScraper {
	return &TikTokScraper{
		apifyKey:   apifyKey,
		httpClient: &http.Client{Timeout: 180 * time.Second},
	}
}

func (s *TikTokScraper) Platform() string {
	return PlatformTikTok
}

func IsTikTokURL(u string) bool {
	return tiktokURLRe.MatchString(u)
}

func (s *TikTokScraper) Scrape(ctx context.Context, postURL string) (*Post, error) {
	input := map[string]interface{}{
		"postURLs":                []string{postURL},
		"resultsPerPage":          1,
		"shouldDownloadVideos":    false,
		"shouldDownloadCovers":    true,
		"shouldDownloadSubtitles": false,
	}
	inputData, _ := json.Marshal(input)

	req, err := http.NewRequestWithContext(ctx, "POST",
		"https://api.apify.com/v2/acts/GdWCkxBtKWOsKjdch/run-sync",
		bytes.NewReader(inputData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apifyKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 429 {
		return nil, ErrRateLimited
	}
	if resp.StatusCode == 404 {
		return nil, ErrVideoNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse TikTok response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrVideoNotFound
	}

	item := results[0]
	post := &Post{
		ID:            getString(item, "id"),
		Platform:      PlatformTikTok,
		Caption:       getString(item, "text"),
		VideoURL:      getString(item, "videoUrl"),
		VideoDuration: getIntNested(item, "videoMeta", "duration"),
		ThumbnailURL:  getStringNested(item, "videoMeta", "coverUrl"),
		OwnerUsername: getStringNested(item, "authorMeta", "name"),
		OwnerName:     getStringNested(item, "authorMeta", "nickName"),
		OwnerAvatar:   getStringNested(item, "authorMeta", "avatar"),
		OwnerID:       getStringNested(item, "authorMeta", "id"),
		Likes:         getInt(item, "diggCount"),
		Comments:      getInt(item, "commentCount"),
	}
	if created := getInt(item, "createTime"); created > 0 {
		post.PostedAt = time.Unix(int64(created), 0).UTC()
	}

	return post, nil
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getStringNested(m map[string]interface{}, key1, key2 string) string {
	if v, ok := m[key1]; ok {
		if nested, ok := v.(map[string]interface{}); ok {
			return getString(nested, key2)
		}
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return 0
}

func getIntNested(m map[string]interface{}, key1, key2 string) int {
	if v, ok := m[key1]; ok {
		if nested, ok := v.(map[string]interface{}); ok {
			return getInt(nested, key2)
		}
	}
	return 0
}
