package backendtest

import (
	"context"
	"errors"
	"testing"

	"github.com/Paintersrp/noteplan/internal/backend"
)

func TestFakeContract(t *testing.T) {
	RunContract(t, func(t *testing.T, clock *Clock) backend.Backend {
		return NewFake(clock.Now)
	})
}

func TestFakeFailureInjection(t *testing.T) {
	f := NewFake(nil)
	boom := errors.New("boom")
	f.Fail(OpGetNotes, boom)

	if _, err := f.GetNotes(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	f.Fail(OpGetNotes, nil)
	if _, err := f.GetNotes(context.Background()); err != nil {
		t.Fatalf("expected failure to be cleared, got %v", err)
	}

	if got := f.CallCount(OpGetNotes); got != 2 {
		t.Fatalf("expected two recorded calls, got %d", got)
	}
}
