package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHas(t *testing.T) {
	c := NewChecker(nil)
	tests := []struct {
		role, perm string
		want       bool
	}{
		{"admin", "catalog:import", true},
		{"admin", "anything", true},
		{"operator", "catalog:import", true},
		{"operator", "history:view", true},
		{"operator", "users:delete", false},
		{"viewer", "catalog:import", false},
		{"", "catalog:import", false},
	}
	for _, tt := range tests {
		if got := c.Has(tt.role, tt.perm); got != tt.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := Require("catalog:import")(ok)

	for role, want := range map[string]int{"": http.StatusForbidden, "viewer": http.StatusForbidden, "operator": http.StatusNoContent} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithRole(req.Context(), role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("role %q: code = %d, want %d", role, rec.Code, want)
		}
	}
}
