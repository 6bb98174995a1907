package domain

import "time"

// ==== Session Constants ====

// SessionTTL is the default lifetime of a visitor session
const SessionTTL = 24 * time.Hour

// SessionCookieName is the cookie carrying the visitor session token
const SessionCookieName = "cp_session"

// ==== Rate Limit Constants ====

const (
	// DefaultRateLimitAPI is the default rate limit for JSON endpoints (requests/sec)
	DefaultRateLimitAPI = 10

	// DefaultRateLimitAuth is the stricter rate limit for form submission
	DefaultRateLimitAuth = 2

	// DefaultRateLimitWS is the default rate limit for WebSocket connections (req/sec)
	DefaultRateLimitWS = 5
)

// ==== Timing Constants ====

const (
	// SubmitDelay is the simulated round trip of a sign-in/sign-up request
	SubmitDelay = 2 * time.Second

	// FeatureRotation is how often the auth page hero rotates its feature card
	FeatureRotation = 4 * time.Second
)

// ==== Notice Constants ====

// MaxNoticeHistory is the number of notices replayed to a late WebSocket client
const MaxNoticeHistory = 16

// MaxShapeCount caps descriptors served by the shapes API
const MaxShapeCount = 500
