package resultstore

import (
	"testing"

	userstore "github.com/dalemusser/stratalearn/internal/app/store/users"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"github.com/dalemusser/stratalearn/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestInsertUpdateGetByID(t *testing.T) {
	gw := testutil.SetupGateway(t)
	s := New(gw)
	users := userstore.New(gw)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := &models.User{Email: "learner@example.com", Name: "Learner", Role: models.RoleUser, IsActive: true}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("user insert failed: %v", err)
	}

	r := &models.ResultDoc{
		UserID:       u.ID,
		Theme:        "fractions",
		ProblemIndex: 1,
		Payload:      bson.M{"score": 10},
	}
	if err := s.Insert(ctx, r); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	r.Payload = bson.M{"score": 42}
	if err := s.Update(ctx, r); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.GetByID(ctx, r.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil")
	}
	if score, _ := got.Payload["score"].(int32); score != 42 {
		t.Errorf("payload score = %v, want 42", got.Payload["score"])
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Error("updated_at earlier than created_at")
	}
}

func TestInsertUpdate_Nil(t *testing.T) {
	s := New(testutil.SetupGateway(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := s.Insert(ctx, nil); err != ErrNilResult {
		t.Errorf("Insert(nil) = %v, want ErrNilResult", err)
	}
	if err := s.Update(ctx, nil); err != ErrNilResult {
		t.Errorf("Update(nil) = %v, want ErrNilResult", err)
	}
}

func TestGetByUser_SortedAscending(t *testing.T) {
	gw := testutil.SetupGateway(t)
	s := New(gw)
	users := userstore.New(gw)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := &models.User{Email: "order@example.com", Name: "Order", Role: models.RoleUser, IsActive: true}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("user insert failed: %v", err)
	}

	for _, idx := range []int{3, 1, 2} {
		r := &models.ResultDoc{UserID: u.ID, Theme: "fractions", ProblemIndex: idx}
		if err := s.Insert(ctx, r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	got, err := s.GetByUser(ctx, "ORDER@example.com")
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("GetByUser returned %d results, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Errorf("results not in ascending creation order at %d", i)
		}
	}
}

func TestGetByUser_IncludesInactiveUser(t *testing.T) {
	gw := testutil.SetupGateway(t)
	s := New(gw)
	users := userstore.New(gw)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := &models.User{Email: "gone@example.com", Name: "Gone", Role: models.RoleUser, IsActive: false}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("user insert failed: %v", err)
	}
	if err := s.Insert(ctx, &models.ResultDoc{UserID: u.ID, Theme: "algebra", ProblemIndex: 1}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := s.GetByUser(ctx, "gone@example.com")
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("GetByUser(inactive user) returned %d results, want 1", len(got))
	}
}

func TestGetByUser_UnknownAndBlank(t *testing.T) {
	s := New(testutil.SetupGateway(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, email := range []string{"", "  ", "nobody@example.com"} {
		got, err := s.GetByUser(ctx, email)
		if err != nil {
			t.Fatalf("GetByUser(%q) failed: %v", email, err)
		}
		if len(got) != 0 {
			t.Errorf("GetByUser(%q) returned %d results, want 0", email, len(got))
		}
	}
}
