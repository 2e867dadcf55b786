package usersapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	userstore "github.com/dalemusser/stratalearn/internal/app/store/users"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"github.com/dalemusser/stratalearn/internal/testutil"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*Handler, *userstore.Store) {
	t.Helper()
	users := userstore.New(testutil.SetupGateway(t))
	return NewHandler(users, zap.NewNop()), users
}

func insertUser(t *testing.T, users *userstore.Store, email, role string) *models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := &models.User{Email: email, Name: "Test User", Role: role, IsActive: true}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("Insert(%s) failed: %v", email, err)
	}
	return u
}

func TestList(t *testing.T) {
	h, users := setup(t)
	insertUser(t, users, "a@example.com", models.RoleUser)
	insertUser(t, users, "b@example.com", models.RoleUser)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp struct {
		Users []models.UserSummary `json:"users"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Errorf("returned %d users, want 2", len(resp.Users))
	}
}

func TestSetRole_DenialIsForbidden(t *testing.T) {
	h, users := setup(t)
	actor := insertUser(t, users, "user@example.com", models.RoleUser)
	target := insertUser(t, users, "target@example.com", models.RoleUser)

	body := `{"acting_id":"` + actor.ID.Hex() + `","target_id":"` + target.ID.Hex() + `","role":"admin"}`
	rec := httptest.NewRecorder()
	h.SetRole(rec, httptest.NewRequest(http.MethodPost, "/role", strings.NewReader(body)))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("forbidden response carries no reason")
	}
}

func TestSetRole_Allowed(t *testing.T) {
	h, users := setup(t)
	root := insertUser(t, users, "root@example.com", models.RoleSuperAdmin)
	target := insertUser(t, users, "target@example.com", models.RoleUser)

	body := `{"acting_id":"` + root.ID.Hex() + `","target_id":"` + target.ID.Hex() + `","role":"admin"}`
	rec := httptest.NewRecorder()
	h.SetRole(rec, httptest.NewRequest(http.MethodPost, "/role", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	got, err := users.FindByID(ctx, target.ID.Hex())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestSetActive_BadBody(t *testing.T) {
	h, _ := setup(t)

	rec := httptest.NewRecorder()
	h.SetActive(rec, httptest.NewRequest(http.MethodPost, "/active", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSearchRaw_NonAdminSeesNothing(t *testing.T) {
	h, users := setup(t)
	actor := insertUser(t, users, "user@example.com", models.RoleUser)

	rec := httptest.NewRecorder()
	h.SearchRaw(rec, httptest.NewRequest(http.MethodGet, "/raw?acting_id="+actor.ID.Hex(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Users) != 0 {
		t.Errorf("returned %d users for non-admin, want 0", len(resp.Users))
	}
}
