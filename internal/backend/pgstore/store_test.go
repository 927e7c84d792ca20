package pgstore

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/backend/backendtest"
)

var schemaSeq atomic.Int64

func TestStoreContract(t *testing.T) {
	dsn := os.Getenv("NOTEPLAN_TEST_DSN")
	if dsn == "" {
		t.Skip("NOTEPLAN_TEST_DSN not set")
	}

	backendtest.RunContract(t, func(t *testing.T, clock *backendtest.Clock) backend.Backend {
		ctx := context.Background()
		schema := fmt.Sprintf("noteplan_test_%d_%d", os.Getpid(), schemaSeq.Add(1))

		s, err := Open(ctx, dsn, WithSchema(schema), WithClock(clock.Now))
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		t.Cleanup(func() {
			if err := s.DropSchema(ctx, schema); err != nil {
				t.Logf("failed to drop schema %s: %v", schema, err)
			}
			_ = s.Close()
		})
		return s
	})
}

func TestOpenRejectsBadDSN(t *testing.T) {
	_, err := Open(context.Background(), "postgres://%zz")
	if err == nil {
		t.Fatalf("expected malformed dsn to be rejected")
	}
	if !strings.Contains(err.Error(), "dsn") {
		t.Fatalf("expected a dsn error, got %v", err)
	}
}
