package constants

const (
	// SessionCookieName is the cookie carrying the session id.
	SessionCookieName = "perfume_session"

	// ContextKeyUserID is the key under which the authenticated user id is
	// stored, both in the session and in the gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyPerfume is the gin context key for the perfume loaded by the
	// ownership middleware.
	ContextKeyPerfume = "perfume"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 5

	// MaxTagNameLength bounds tag names; candidates above it are rejected
	// before any row is written.
	MaxTagNameLength = 255

	// MediaURLPrefix is the public path under which stored media is served.
	MediaURLPrefix = "/media"
)
