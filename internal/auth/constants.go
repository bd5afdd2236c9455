package auth

const (
	ContextKeyUserID       = "user_id"
	ContextKeyUserRole     = "user_role"
	ContextKeyLibraryID    = "user_library_id"
	ContextKeyTargetUserID = "target_user_id"

	// Identity headers are set on the forwarded request only after a successful
	// decision. Inbound copies are always stripped.
	HeaderUserID          = "X-User-Id"
	HeaderUserRole        = "X-User-Role"
	HeaderLibraryID       = "X-User-Library-Id"
	HeaderRequestedUserID = "X-Requested-User-Id"

	DefaultCookieName = "auth-token"

	jsonKeyError  = "error"
	jsonKeyReason = "reason"

	headerAuthorization   = "Authorization"
	headerWWWAuthenticate = "WWW-Authenticate"

	bearerScheme    = "bearer"
	bearerChallenge = "Bearer"
	authHeaderParts = 2
)

const (
	msgMissingCredential      = "authentication required"
	msgBadCredential          = "invalid or expired token"
	msgInsufficientPermission = "insufficient permissions"
	msgForbiddenScope         = "access to this resource is not allowed"

	msgUserNotAuthenticated   = "user not authenticated"
	msgInvalidUserIDCtx       = "invalid user ID in context"
	msgInvalidRoleCtx         = "invalid user role in context"
	msgTargetUserNotResolved  = "requested user could not be resolved"
	msgInvalidTargetUserIDCtx = "invalid requested user ID in context"

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgInvalidTokenClaims      = "invalid token claims"
	msgInvalidSubject          = "token subject must be a positive user id"
	msgInvalidLibraryClaim     = "token library id must be positive"
	msgVerifierPanic           = "credential verification panicked: %v"
	msgRejectionFmt            = "%s (%d): %v"
	msgUnknownScopeKindFmt     = "%w: unknown scope kind %s"
)
