package progress

import (
	"reflect"
	"testing"

	resultstore "github.com/dalemusser/stratalearn/internal/app/store/results"
	sessionstore "github.com/dalemusser/stratalearn/internal/app/store/sessions"
	userstore "github.com/dalemusser/stratalearn/internal/app/store/users"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"github.com/dalemusser/stratalearn/internal/testutil"
)

func TestGetUserProgress(t *testing.T) {
	gw := testutil.SetupGateway(t)
	agg := New(gw)
	users := userstore.New(gw)
	sessions := sessionstore.New(gw)
	results := resultstore.New(gw)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := &models.User{Email: "learner@example.com", Name: "Learner", Role: models.RoleUser, IsActive: true}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("user insert failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := sessions.Record(ctx, "learner@example.com"); err != nil {
			t.Fatalf("session record failed: %v", err)
		}
	}
	for _, idx := range []int{1, 2} {
		r := &models.ResultDoc{UserID: u.ID, Theme: "fractions", ProblemIndex: idx}
		if err := results.Insert(ctx, r); err != nil {
			t.Fatalf("result insert failed: %v", err)
		}
	}

	p, err := agg.GetUserProgress(ctx, " LEARNER@example.com ")
	if err != nil {
		t.Fatalf("GetUserProgress failed: %v", err)
	}
	if p.UserEmail != "learner@example.com" {
		t.Errorf("email = %q, want normalized", p.UserEmail)
	}
	if p.TotalSessions != 3 {
		t.Errorf("total sessions = %d, want 3", p.TotalSessions)
	}
	if p.TotalSolved != 2 {
		t.Errorf("total solved = %d, want 2", p.TotalSolved)
	}
	if p.LastSessionAt == nil {
		t.Error("last session time = nil, want a time")
	}
}

func TestGetUserProgress_BlankAndUnknown(t *testing.T) {
	gw := testutil.SetupGateway(t)
	agg := New(gw)
	sessions := sessionstore.New(gw)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := agg.GetUserProgress(ctx, "   ")
	if err != nil {
		t.Fatalf("GetUserProgress(blank) failed: %v", err)
	}
	if p.UserEmail != "" || p.TotalSessions != 0 || p.TotalSolved != 0 || p.LastSessionAt != nil {
		t.Errorf("GetUserProgress(blank) = %+v, want zero record", p)
	}

	// Sessions key on email, so an email with sessions but no user record
	// still reports them; solved stays zero.
	if err := sessions.Record(ctx, "ghost@example.com"); err != nil {
		t.Fatalf("session record failed: %v", err)
	}
	p, err = agg.GetUserProgress(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("GetUserProgress failed: %v", err)
	}
	if p.TotalSessions != 1 || p.TotalSolved != 0 {
		t.Errorf("GetUserProgress(ghost) = %+v, want 1 session, 0 solved", p)
	}
}

func TestGetSolvedProblemIndexes(t *testing.T) {
	gw := testutil.SetupGateway(t)
	agg := New(gw)
	users := userstore.New(gw)
	results := resultstore.New(gw)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := &models.User{Email: "solver@example.com", Name: "Solver", Role: models.RoleUser, IsActive: true}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("user insert failed: %v", err)
	}

	// Duplicates and out-of-order inserts come back sorted and unique.
	for _, idx := range []int{3, 1, 3, 2} {
		r := &models.ResultDoc{UserID: u.ID, Theme: "fractions", ProblemIndex: idx}
		if err := results.Insert(ctx, r); err != nil {
			t.Fatalf("result insert failed: %v", err)
		}
	}
	if err := results.Insert(ctx, &models.ResultDoc{UserID: u.ID, Theme: "algebra", ProblemIndex: 9}); err != nil {
		t.Fatalf("result insert failed: %v", err)
	}

	got, err := agg.GetSolvedProblemIndexes(ctx, "solver@example.com", "fractions")
	if err != nil {
		t.Fatalf("GetSolvedProblemIndexes failed: %v", err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetSolvedProblemIndexes(fractions) = %v, want %v", got, want)
	}

	got, err = agg.GetSolvedProblemIndexes(ctx, "solver@example.com", "")
	if err != nil {
		t.Fatalf("GetSolvedProblemIndexes failed: %v", err)
	}
	if want := []int{1, 2, 3, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetSolvedProblemIndexes(all) = %v, want %v", got, want)
	}
}

func TestGetSolvedProblemIndexes_BlankAndUnknown(t *testing.T) {
	agg := New(testutil.SetupGateway(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, email := range []string{"", "nobody@example.com"} {
		got, err := agg.GetSolvedProblemIndexes(ctx, email, "")
		if err != nil {
			t.Fatalf("GetSolvedProblemIndexes(%q) failed: %v", email, err)
		}
		if len(got) != 0 {
			t.Errorf("GetSolvedProblemIndexes(%q) = %v, want empty", email, got)
		}
	}
}
