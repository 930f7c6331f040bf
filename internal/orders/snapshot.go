package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marqenbd/marqen-backend/pkg/config"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/redis"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
	OrderSnapshotKey(cartToken string) string
}

// SnapshotService holds the confirmation blob written at submission time
// for the confirmation page. Each snapshot is keyed by cart token, expires
// after the configured TTL, and is consumed on first read.
type SnapshotService interface {
	// Save overwrites any previous snapshot for the cart session.
	Save(ctx context.Context, cartToken string, snapshot types.OrderSnapshot) error
	// Take returns the snapshot and removes it in the same operation, so a
	// confirmation-page refresh finds nothing.
	Take(ctx context.Context, cartToken string) (*types.OrderSnapshot, error)
}

type snapshotService struct {
	store snapshotStore
	ttl   time.Duration
}

// NewSnapshotService builds the snapshot store on the shared Redis client.
func NewSnapshotService(cfg config.OrdersConfig, store snapshotStore) (SnapshotService, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	ttl := cfg.SnapshotTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &snapshotService{store: store, ttl: ttl}, nil
}

func (s *snapshotService) Save(ctx context.Context, cartToken string, snapshot types.OrderSnapshot) error {
	if cartToken == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding order snapshot")
	}
	if err := s.store.Set(ctx, s.store.OrderSnapshotKey(cartToken), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing order snapshot")
	}
	return nil
}

func (s *snapshotService) Take(ctx context.Context, cartToken string) (*types.OrderSnapshot, error) {
	if cartToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	raw, err := s.store.GetDel(ctx, s.store.OrderSnapshotKey(cartToken))
	if redis.IsNil(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no order snapshot for session")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading order snapshot")
	}

	var snapshot types.OrderSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding order snapshot")
	}
	return &snapshot, nil
}
