package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go-tutoring-backend/config"
	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/logger"

	"go.uber.org/zap"
)

const instagramGraphBaseURL = "https://graph.instagram.com"

// instagramUsecase is a read-through cache over the Instagram Graph API.
// The showcase is decoration: the feed is memoized for the freshness
// window and any provider failure degrades to the last cached value, or an
// empty feed. It never produces an error response.
type instagramUsecase struct {
	accessToken string
	userID      string
	ttl         time.Duration
	baseURL     string
	httpClient  *http.Client

	mu        sync.Mutex
	cached    []domain.InstagramMedia
	fetchedAt time.Time

	now func() time.Time
}

func NewInstagramUsecase(cfg *config.Config) domain.InstagramUsecase {
	return &instagramUsecase{
		accessToken: cfg.InstagramAccessToken,
		userID:      cfg.InstagramUserID,
		ttl:         cfg.InstagramCacheTTL,
		baseURL:     instagramGraphBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		now:         time.Now,
	}
}

// mediaResponse mirrors the Graph API media edge payload.
type mediaResponse struct {
	Data []struct {
		ID        string `json:"id"`
		Caption   string `json:"caption"`
		MediaType string `json:"media_type"`
		MediaURL  string `json:"media_url"`
		Permalink string `json:"permalink"`
		Timestamp string `json:"timestamp"`
	} `json:"data"`
}

func (uc *instagramUsecase) RecentMedia(ctx context.Context) []domain.InstagramMedia {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()
	if uc.cached != nil && now.Sub(uc.fetchedAt) < uc.ttl {
		return uc.cached
	}

	if uc.accessToken == "" || uc.userID == "" {
		return uc.fallback()
	}

	media, err := uc.fetch(ctx)
	if err != nil {
		logger.Log.Warn("instagram fetch failed, serving fallback", zap.Error(err))
		return uc.fallback()
	}

	uc.cached = media
	uc.fetchedAt = now
	return media
}

// fallback serves stale content over no content, and no content over an
// error.
func (uc *instagramUsecase) fallback() []domain.InstagramMedia {
	if uc.cached != nil {
		return uc.cached
	}
	return []domain.InstagramMedia{}
}

func (uc *instagramUsecase) fetch(ctx context.Context) ([]domain.InstagramMedia, error) {
	endpoint := fmt.Sprintf("%s/%s/media?fields=%s&access_token=%s",
		uc.baseURL,
		url.PathEscape(uc.userID),
		url.QueryEscape("id,caption,media_type,media_url,permalink,timestamp"),
		url.QueryEscape(uc.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build instagram request: %w", err)
	}

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("instagram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("instagram responded with status %d", resp.StatusCode)
	}

	var parsed mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode instagram response: %w", err)
	}

	media := make([]domain.InstagramMedia, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		media = append(media, domain.InstagramMedia{
			ID:        item.ID,
			Caption:   item.Caption,
			MediaType: item.MediaType,
			MediaURL:  item.MediaURL,
			Permalink: item.Permalink,
			Timestamp: item.Timestamp,
		})
	}
	return media, nil
}
