package sessionstore

import (
	"testing"

	"github.com/dalemusser/stratalearn/internal/testutil"
)

func TestRecordCountLast(t *testing.T) {
	s := New(testutil.SetupGateway(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := s.Record(ctx, " Learner@Example.com "); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	n, err := s.CountByEmail(ctx, "learner@example.com")
	if err != nil {
		t.Fatalf("CountByEmail failed: %v", err)
	}
	if n != 3 {
		t.Errorf("CountByEmail = %d, want 3", n)
	}

	last, err := s.LastByEmail(ctx, "LEARNER@example.com")
	if err != nil {
		t.Fatalf("LastByEmail failed: %v", err)
	}
	if last == nil {
		t.Fatal("LastByEmail = nil, want a time")
	}
}

func TestBlankEmail(t *testing.T) {
	s := New(testutil.SetupGateway(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := s.Record(ctx, "   "); err != nil {
		t.Fatalf("Record(blank) failed: %v", err)
	}

	n, err := s.CountByEmail(ctx, "")
	if err != nil || n != 0 {
		t.Errorf("CountByEmail(blank) = %d, %v; want 0, nil", n, err)
	}

	last, err := s.LastByEmail(ctx, "")
	if err != nil || last != nil {
		t.Errorf("LastByEmail(blank) = %v, %v; want nil, nil", last, err)
	}
}

func TestNoSessions(t *testing.T) {
	s := New(testutil.SetupGateway(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := s.CountByEmail(ctx, "nobody@example.com")
	if err != nil || n != 0 {
		t.Errorf("CountByEmail(unknown) = %d, %v; want 0, nil", n, err)
	}

	last, err := s.LastByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("LastByEmail failed: %v", err)
	}
	if last != nil {
		t.Errorf("LastByEmail(unknown) = %v, want nil", last)
	}
}
