package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

type stubSnapshotService struct {
	snapshot  *types.OrderSnapshot
	err       error
	lastToken string
}

func (s *stubSnapshotService) Save(ctx context.Context, cartToken string, snapshot types.OrderSnapshot) error {
	return nil
}

func (s *stubSnapshotService) Take(ctx context.Context, cartToken string) (*types.OrderSnapshot, error) {
	s.lastToken = cartToken
	return s.snapshot, s.err
}

func TestOrdersLastSuccess(t *testing.T) {
	svc := &stubSnapshotService{snapshot: &types.OrderSnapshot{
		OrderNumber: "ORD-71717171",
		Total:       1060,
	}}
	handler := OrdersLast(svc, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/orders/last", nil), "tok")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastToken != "tok" {
		t.Fatalf("expected token passthrough got %q", svc.lastToken)
	}

	var envelope struct {
		Data types.OrderSnapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != "ORD-71717171" {
		t.Fatalf("unexpected order number %q", envelope.Data.OrderNumber)
	}
}

func TestOrdersLastNotFound(t *testing.T) {
	svc := &stubSnapshotService{err: pkgerrors.New(pkgerrors.CodeNotFound, "no order snapshot for session")}
	handler := OrdersLast(svc, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/orders/last", nil), "tok")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestOrdersLastMissingToken(t *testing.T) {
	handler := OrdersLast(&stubSnapshotService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/last", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
