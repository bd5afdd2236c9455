package rbac

import (
	"net/http"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Roles:     []Role{"admin", "reader"},
		SuperRole: "admin",
		SelfAlias: "me",
		Rules: map[Role][]Rule{
			"admin":  {{Pattern: "/items"}, {Pattern: "/items/:id", Methods: []string{http.MethodGet, http.MethodDelete}}},
			"reader": {{Pattern: "/items", Methods: []string{http.MethodGet}}},
		},
		ScopedRoutes: []ScopedRoute{
			{Pattern: "/items/:id", Kind: ScopeSelf, Param: "id"},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(*Config) {}, ""},
		{"No roles", func(c *Config) { c.Roles = nil }, "roles must not be empty"},
		{"No rules", func(c *Config) { c.Rules = nil }, "rules must not be empty"},
		{"Empty role name", func(c *Config) { c.Roles = append(c.Roles, "") }, "role name must not be empty"},
		{"Duplicate role", func(c *Config) { c.Roles = append(c.Roles, "admin") }, "duplicate role name"},
		{"Unknown super role", func(c *Config) { c.SuperRole = "root" }, "super role"},
		{"Unknown library-bound role", func(c *Config) { c.LibraryBoundRoles = []Role{"ghost"} }, "library-bound role"},
		{"Alias with slash", func(c *Config) { c.SelfAlias = "my/self" }, "self alias"},
		{"Empty alias", func(c *Config) { c.SelfAlias = "" }, "self alias"},
		{"Rule for unknown role", func(c *Config) { c.Rules["ghost"] = []Rule{{Pattern: "/x"}} }, "unknown role"},
		{"Relative pattern", func(c *Config) { c.Rules["reader"] = []Rule{{Pattern: "items"}} }, "must start with '/'"},
		{"Empty segment", func(c *Config) { c.Rules["reader"] = []Rule{{Pattern: "/items//x"}} }, "empty segment"},
		{"Unnamed wildcard", func(c *Config) { c.Rules["reader"] = []Rule{{Pattern: "/items/:"}} }, "unnamed wildcard"},
		{"Repeated wildcard", func(c *Config) { c.Rules["reader"] = []Rule{{Pattern: "/a/:id/b/:id"}} }, "repeats wildcard"},
		{"Unknown method", func(c *Config) { c.Rules["reader"] = []Rule{{Pattern: "/items", Methods: []string{"get"}}} }, "unknown method"},
		{"Unknown scope kind", func(c *Config) { c.ScopedRoutes[0].Kind = "tenant" }, "unknown kind"},
		{"Scope param missing", func(c *Config) { c.ScopedRoutes[0].Param = "item" }, "no wildcard named"},
		{"Duplicate scoped route", func(c *Config) { c.ScopedRoutes = append(c.ScopedRoutes, c.ScopedRoutes[0]) }, "duplicate scoped route"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMustNewPanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustNew to panic")
		}
	}()
	MustNew(Config{})
}

func TestPatternIndex(t *testing.T) {
	p, err := compilePattern("/libraries/:library/managers/:userId")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := p.index("library"); got != 1 {
		t.Errorf("index(library) = %d, expected 1", got)
	}
	if got := p.index("userId"); got != 3 {
		t.Errorf("index(userId) = %d, expected 3", got)
	}
	if got := p.index("missing"); got != -1 {
		t.Errorf("index(missing) = %d, expected -1", got)
	}
}
