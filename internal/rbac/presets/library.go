package presets

import (
	"net/http"

	"library-service/internal/rbac"
)

const (
	RoleAdmin    rbac.Role = "ADMIN"
	RoleManager  rbac.Role = "MANAGER"
	RoleClient   rbac.Role = "CLIENT"
	RoleDelivery rbac.Role = "DELIVERY"

	SelfAlias = "me"

	ParamUserID    = "id"
	ParamLibraryID = "library"
)

const (
	get   = http.MethodGet
	post  = http.MethodPost
	patch = http.MethodPatch
	del   = http.MethodDelete
)

var crud = []string{get, post, patch, del}

// Library returns the authorization table for the library backend
func Library() rbac.Config {
	return rbac.Config{
		Roles:             []rbac.Role{RoleAdmin, RoleManager, RoleClient, RoleDelivery},
		SuperRole:         RoleAdmin,
		SelfAlias:         SelfAlias,
		LibraryBoundRoles: []rbac.Role{RoleManager},
		Rules: map[rbac.Role][]rbac.Rule{
			RoleAdmin: {
				{Pattern: "/api/users", Methods: crud},
				{Pattern: "/api/users/me", Methods: []string{get, patch}},
				{Pattern: "/api/users/:id", Methods: []string{get, patch, del}},
				{Pattern: "/api/libraries", Methods: crud},
				{Pattern: "/api/libraries/:library", Methods: []string{get, patch, del}},
				{Pattern: "/api/libraries/:library/managers", Methods: []string{get, post}},
				{Pattern: "/api/libraries/:library/managers/:userId", Methods: []string{get, del}},
				{Pattern: "/api/libraries/:library/books", Methods: []string{get}},
				{Pattern: "/api/books", Methods: crud},
				{Pattern: "/api/books/:book", Methods: []string{get, patch, del}},
				{Pattern: "/api/loans", Methods: crud},
				{Pattern: "/api/reservations", Methods: crud},
				{Pattern: "/api/penalties", Methods: crud},
				{Pattern: "/api/sales", Methods: crud},
				{Pattern: "/api/feedbacks", Methods: crud},
				{Pattern: "/api/stats", Methods: []string{get}},
				{Pattern: "/api/public", Methods: []string{get}},
				{Pattern: "/admin", Methods: []string{get}},
			},
			RoleManager: {
				{Pattern: "/api/users", Methods: []string{get}},
				{Pattern: "/api/users/me", Methods: []string{get}},
				{Pattern: "/api/users/:id", Methods: []string{get}},
				{Pattern: "/api/libraries", Methods: []string{get, patch}},
				{Pattern: "/api/libraries/:library", Methods: []string{get, patch}},
				{Pattern: "/api/libraries/:library/managers", Methods: []string{get}},
				{Pattern: "/api/libraries/:library/books", Methods: []string{get}},
				{Pattern: "/api/books", Methods: crud},
				{Pattern: "/api/books/:book", Methods: []string{get, patch, del}},
				{Pattern: "/api/loans", Methods: []string{get, post, patch}},
				{Pattern: "/api/reservations", Methods: []string{get, post, patch}},
				{Pattern: "/api/penalties", Methods: []string{get, post, patch}},
				{Pattern: "/api/sales", Methods: []string{get}},
				{Pattern: "/api/feedbacks", Methods: []string{get, post}},
				{Pattern: "/api/stats", Methods: []string{get}},
				{Pattern: "/api/public", Methods: []string{get}},
			},
			RoleClient: {
				{Pattern: "/api/users/me", Methods: []string{get, patch}},
				{Pattern: "/api/users/:id", Methods: []string{get, patch}},
				{Pattern: "/api/books", Methods: []string{get}},
				{Pattern: "/api/libraries", Methods: []string{get}},
				{Pattern: "/api/libraries/:library", Methods: []string{get}},
				{Pattern: "/api/libraries/:library/books", Methods: []string{get}},
				{Pattern: "/api/reservations", Methods: []string{get, post, del}},
				{Pattern: "/api/feedbacks", Methods: []string{get, post}},
				{Pattern: "/api/public", Methods: []string{get}},
			},
			RoleDelivery: {
				{Pattern: "/api/sales", Methods: []string{get, patch}},
				{Pattern: "/api/users/me", Methods: []string{get}},
				{Pattern: "/api/users/:id", Methods: []string{get}},
				{Pattern: "/api/public", Methods: []string{get}},
			},
		},
		ScopedRoutes: []rbac.ScopedRoute{
			{Pattern: "/api/users/:id", Kind: rbac.ScopeSelf, Param: ParamUserID},
			{Pattern: "/api/libraries/:library", Kind: rbac.ScopeLibrary, Param: ParamLibraryID},
			{Pattern: "/api/libraries/:library/books", Kind: rbac.ScopeLibrary, Param: ParamLibraryID},
			{Pattern: "/api/libraries/:library/managers", Kind: rbac.ScopeLibrary, Param: ParamLibraryID},
			{Pattern: "/api/libraries/:library/managers/:userId", Kind: rbac.ScopeLibrary, Param: ParamLibraryID},
		},
	}
}
