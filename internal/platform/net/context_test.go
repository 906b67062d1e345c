package net_test

import (
	"context"
	"testing"

	pnet "grocer/internal/platform/net"
)

func TestWithRequest_And_Getter(t *testing.T) {
	ctx := pnet.WithRequest(context.Background(), "req-123")
	if got := pnet.RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID got %q want %q", got, "req-123")
	}
	if got := pnet.RequestID(pnet.WithRequest(context.Background(), "")); got != "" {
		t.Fatalf("RequestID on bare ctx = %q", got)
	}
}
