package domain

import "context"

// InstagramMedia is one item of the public showcase feed.
type InstagramMedia struct {
	ID        string `json:"id"`
	Caption   string `json:"caption,omitempty"`
	MediaType string `json:"mediaType"`
	MediaURL  string `json:"mediaUrl"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp"`
}

// InstagramUsecase serves the showcase feed through a read-through cache.
// It never fails the request: provider errors degrade to the last cached
// value, or an empty feed.
type InstagramUsecase interface {
	RecentMedia(ctx context.Context) []InstagramMedia
}
