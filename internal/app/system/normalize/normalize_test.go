package normalize

import "testing"

func TestEmail(t *testing.T) {
	if got := Email("  Learner@Example.COM "); got != "learner@example.com" {
		t.Errorf("Email() = %q, want %q", got, "learner@example.com")
	}
}

func TestName(t *testing.T) {
	if got := Name("  Ada Lovelace  "); got != "Ada Lovelace" {
		t.Errorf("Name() = %q, want %q", got, "Ada Lovelace")
	}
}

func TestRole(t *testing.T) {
	if got := Role(" Admin "); got != "admin" {
		t.Errorf("Role() = %q, want %q", got, "admin")
	}
}

func TestBlank(t *testing.T) {
	for _, s := range []string{"", "   ", "\t\n"} {
		if !Blank(s) {
			t.Errorf("Blank(%q) = false, want true", s)
		}
	}
	if Blank(" x ") {
		t.Error("Blank(\" x \") = true, want false")
	}
}
