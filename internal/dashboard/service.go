package dashboard

import (
	"context"
	"fmt"

	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

type statsSource interface {
	OrderStats(ctx context.Context) (*types.OrderStats, error)
}

// Service exposes the merchant dashboard counters. The numbers come
// straight from the upstream order system; nothing is computed here.
type Service interface {
	OrderStats(ctx context.Context) (*types.OrderStats, error)
}

type service struct {
	upstream statsSource
}

// NewService builds the dashboard passthrough.
func NewService(upstream statsSource) (Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("upstream client required")
	}
	return &service{upstream: upstream}, nil
}

func (s *service) OrderStats(ctx context.Context) (*types.OrderStats, error) {
	stats, err := s.upstream.OrderStats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching order stats")
	}
	return stats, nil
}
