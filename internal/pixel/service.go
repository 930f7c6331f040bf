package pixel

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/marqenbd/marqen-backend/pkg/config"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/metrics"
)

type dedupStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	PixelDedupKey(eventKey string) string
}

// Service forwards analytics events to the Meta Conversions API.
// Every dispatch is fire-and-forget: failures are logged and counted but
// never returned to callers, and nothing in a user flow waits on the pixel
// beyond the request itself.
type Service interface {
	// Track dispatches the event, deduplicating on Event.Key when set.
	Track(ctx context.Context, event Event)
	// Enabled reports whether a pixel id is configured.
	Enabled() bool
}

type service struct {
	http     *resty.Client
	cfg      config.PixelConfig
	dedup    dedupStore
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	dedupTTL time.Duration
}

// NewService builds the pixel dispatcher. A missing pixel id disables
// dispatch cleanly.
func NewService(cfg config.PixelConfig, dedup dedupStore, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if dedup == nil {
		return nil, fmt.Errorf("dedup store required")
	}
	ttl := cfg.DedupTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(5 * time.Second).
		SetRetryCount(0)
	return &service{
		http:     http,
		cfg:      cfg,
		dedup:    dedup,
		logg:     logg,
		metrics:  m,
		dedupTTL: ttl,
	}, nil
}

func (s *service) Enabled() bool {
	return s.cfg.PixelID != ""
}

func (s *service) Track(ctx context.Context, event Event) {
	if !s.Enabled() {
		return
	}
	if !event.Name.IsValid() {
		s.logg.Warn(s.logg.WithField(ctx, "event", event.Name.String()), "pixel event not tracked: unknown event")
		return
	}

	if event.Key != "" {
		fresh, err := s.dedup.SetNX(ctx, s.dedup.PixelDedupKey(event.Key), time.Now().UnixMilli(), s.dedupTTL)
		if err != nil {
			// Dedup check failure falls through to a send; a duplicate
			// pixel event beats a dropped one.
			s.logg.Error(s.logg.WithField(ctx, "event_key", event.Key), "pixel dedup check failed", err)
		} else if !fresh {
			s.metrics.IncPixelEvent(event.Name.String(), "deduped")
			return
		}
	}

	if err := s.send(ctx, event); err != nil {
		s.metrics.IncPixelEvent(event.Name.String(), "failure")
		s.logg.Error(s.logg.WithField(ctx, "event", event.Name.String()), "pixel event dispatch failed", err)
		return
	}
	s.metrics.IncPixelEvent(event.Name.String(), "success")
}

func (s *service) send(ctx context.Context, event Event) error {
	payload := map[string]any{
		"data": []map[string]any{
			{
				"event_name":    event.Name.String(),
				"event_time":    time.Now().Unix(),
				"action_source": "website",
				"custom_data":   event.Params,
			},
		},
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("access_token", s.cfg.AccessToken).
		SetBody(payload).
		Post("/" + s.cfg.PixelID + "/events")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("pixel endpoint: status %d", resp.StatusCode())
	}
	return nil
}
