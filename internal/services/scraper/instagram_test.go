package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newProxyStub(t *testing.T, status int, graphql string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing proxy API key header")
		}
		w.WriteHeader(status)
		if graphql != "" {
			_ = json.NewEncoder(w).Encode(map[string]string{"data": graphql})
		}
	}))
}

func TestInstagramScrape(t *testing.T) {
	graphql := `{"data":{"xdt_shortcode_media":{
		"shortcode":"Cxyz123",
		"display_url":"https://cdn.example.com/img.jpg",
		"video_duration":58.2,
		"taken_at_timestamp":1700000000,
		"edge_media_to_caption":{"edges":[{"node":{"text":"Mercimek çorbası tarifi"}}]},
		"edge_media_preview_like":{"count":1200},
		"edge_media_to_comment":{"count":34},
		"owner":{"id":"99","username":"asci_teyze","full_name":"Ayşe","profile_pic_url":"https://cdn.example.com/pp.jpg"}
	}}}`
	srv := newProxyStub(t, http.StatusOK, graphql)
	defer srv.Close()

	sc := NewInstagramScraper(srv.URL, "test-key")
	post, err := sc.Scrape(context.Background(), "https://www.instagram.com/chef.ali/reels/Cxyz123/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if post.ID != "Cxyz123" {
		t.Errorf("ID = %q, want Cxyz123", post.ID)
	}
	if post.Caption != "Mercimek çorbası tarifi" {
		t.Errorf("Caption = %q", post.Caption)
	}
	if post.OwnerUsername != "asci_teyze" {
		t.Errorf("OwnerUsername = %q", post.OwnerUsername)
	}
	if post.Likes != 1200 || post.Comments != 34 {
		t.Errorf("engagement = %d/%d, want 1200/34", post.Likes, post.Comments)
	}
	if post.VideoDuration != 58 {
		t.Errorf("VideoDuration = %d, want 58", post.VideoDuration)
	}
	if post.PostedAt.IsZero() {
		t.Error("PostedAt not set")
	}
}

func TestInstagramScrapePrivateAccount(t *testing.T) {
	srv := newProxyStub(t, http.StatusForbidden, "")
	defer srv.Close()

	sc := NewInstagramScraper(srv.URL, "test-key")
	_, err := sc.Scrape(context.Background(), "https://www.instagram.com/p/Cxyz123/")
	if err != ErrPrivateAccount {
		t.Fatalf("expected ErrPrivateAccount, got %v", err)
	}
}

func TestInstagramScrapePostNotFound(t *testing.T) {
	srv := newProxyStub(t, http.StatusOK, `{"data":{"xdt_shortcode_media":{}}}`)
	defer srv.Close()

	sc := NewInstagramScraper(srv.URL, "test-key")
	_, err := sc.Scrape(context.Background(), "https://www.instagram.com/p/Cxyz123/")
	if err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestInstagramScrapeRejectsMalformedURL(t *testing.T) {
	sc := NewInstagramScraper("http://unused", "test-key")
	_, err := sc.Scrape(context.Background(), "https://www.instagram.com/chef.ali/")
	if err != ErrInvalidURL {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}
