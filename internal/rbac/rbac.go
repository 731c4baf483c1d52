package rbac

import (
	"context"
	"net/http"
	"strings"
)

// RolePermissions is the default policy. "*" grants everything and a
// trailing "*" matches a prefix ("catalog:*").
var RolePermissions = map[string][]string{
	"admin": {"*"},
	"operator": {
		"catalog:*",
		"history:view",
	},
}

type Checker struct {
	perms map[string][]string
}

func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	return &Checker{perms: rp}
}

func (c *Checker) Has(role, perm string) bool {
	for _, p := range c.perms[role] {
		if p == "*" || p == perm {
			return true
		}
		if strings.HasSuffix(p, "*") && strings.HasPrefix(perm, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}

// Require rejects requests whose context role lacks perm.
func (c *Checker) Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !c.Has(role, perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var defaultChecker = NewChecker(nil)

// Require checks perm against RolePermissions.
func Require(perm string) func(http.Handler) http.Handler { return defaultChecker.Require(perm) }

type roleKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func RoleFromContext(ctx context.Context) string {
	s, _ := ctx.Value(roleKey{}).(string)
	return s
}
