package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"
)

type YouTubeScraper struct {
	httpClient *http.Client
}

func NewYouTubeScraper() *YouTubeScraper {
	return &YouTubeScraper{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *YouTubeScraper) Platform() string {
	return PlatformYouTube
}

func IsYouTubeURL(u string) bool {
	return youtubeURLRe.MatchString(u)
}

var videoIDRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtube\.com/shorts/|youtu\.be/)([A-Za-z0-9_-]{11})`)

func extractVideoID(u string) (string, error) {
	matches := videoIDRe.FindStringSubmatch(u)
	if len(matches) < 2 {
		return "", ErrInvalidURL
	}
	return matches[1], nil
}

type playerResponse struct {
	VideoDetails struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		LengthSeconds    string `json:"lengthSeconds"`
		ChannelID        string `json:"channelId"`
		ShortDescription string `json:"shortDescription"`
		Author           string `json:"author"`
		Thumbnail        struct {
			Thumbnails []struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
	PlayabilityStatus struct {
		Status string `json:"status"`
	} `json:"playabilityStatus"`
}

// Scrape fetches video metadata through the Innertube player endpoint, which
// does not require an API key.
func (s *YouTubeScraper) Scrape(ctx context.Context, postURL string) (*Post, error) {
	videoID, err := extractVideoID(postURL)
	if err != nil {
		return nil, err
	}

	reqBody := map[string]interface{}{
		"videoId": videoID,
		"context": map[string]interface{}{
			"client": map[string]string{
				"clientName":    "ANDROID",
				"clientVersion": "19.09.37",
			},
		},
	}
	body, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST",
		"https://www.youtube.com/youtubei/v1/player",
		bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 429 {
		return nil, ErrRateLimited
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}

	details := player.VideoDetails
	if details.VideoID == "" {
		return nil, ErrVideoNotFound
	}

	duration, _ := strconv.Atoi(details.LengthSeconds)

	thumbnail := ""
	if n := len(details.Thumbnail.Thumbnails); n > 0 {
		thumbnail = details.Thumbnail.Thumbnails[n-1].URL
	}

	return &Post{
		ID:            details.VideoID,
		Platform:      PlatformYouTube,
		Caption:       details.Title + "\n\n" + details.ShortDescription,
		VideoDuration: duration,
		ThumbnailURL:  thumbnail,
		OwnerUsername: details.Author,
		OwnerName:     details.Author,
		OwnerID:       details.ChannelID,
	}, nil
}
