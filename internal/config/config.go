package config

import (
	"context"
	"os"
	"strings"
	"time"
)

// ListenerConfig holds the network/TLS settings for a single listener (main or management).
type ListenerConfig struct {
	Port              int
	EnablePlainText   bool
	EnableTLS         bool
	TLSCertFile       string
	TLSKeyFile        string
	ReadHeaderTimeout time.Duration
}

type contextKey struct{}

// WithContext returns a new context carrying the given Config.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext retrieves the Config from the context.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(contextKey{}).(*Config)
	return cfg
}

const (
	ModeProd    = "prod"
	ModeTesting = "testing"
)

// ThrottleLimit configures one rate-limited action bucket's sliding
// window: at most MaxCount actions per PeriodSeconds. Mirrors
// internal/authz.Limit's shape without importing internal/authz, so
// config stays the leaf package the edge/cmd layers build an
// authz.Authorizer from.
type ThrottleLimit struct {
	MaxCount      int
	PeriodSeconds int64
}

// DefaultPrivilegeGrant bundles the privilege value and duration a newly
// registered, not-yet-trusted user is granted automatically, mirroring
// privilege.DefaultGrant's shape (spec.md §4.4).
type DefaultPrivilegeGrant struct {
	Value    int
	Duration time.Duration
}

// Config holds all configuration for the forum core and its edge.
type Config struct {
	// Mode controls security behavior: "prod" (default) or "testing".
	// In testing mode, X-Client-ID header is accepted and API key validation is relaxed.
	Mode string

	// Server
	Listener           ListenerConfig
	ManagementListener ListenerConfig
	// ManagementListenerEnabled is true when --management-port (or
	// FORUMCORE_MANAGEMENT_PORT) was explicitly provided. When false,
	// management endpoints are served on the main port.
	ManagementListenerEnabled bool
	// ManagementAccessLog enables HTTP access logging for management endpoints (/health, /ready, /metrics).
	// Disabled by default to suppress high-frequency probe noise from the access log.
	ManagementAccessLog bool
	CORSEnabled         bool
	CORSOrigins         string
	// MetricsLabels is a comma-separated key=value list of constant
	// labels added to every Prometheus metric this process exports.
	MetricsLabels string

	// Security
	// APIKeys maps API key values to client IDs (FORUMCORE_API_KEYS_<CLIENT_ID>=<key>).
	APIKeys           map[string]string
	AdminOIDCRole     string
	ModeratorOIDCRole string
	OIDCIssuer        string
	// OIDCDiscoveryURL is the internal URL used for OIDC discovery when
	// the issuer URL itself is not reachable from this process.
	OIDCDiscoveryURL string

	// Body size limit (bytes)
	MaxBodySize int64

	// Temporary file directory. Empty uses platform default temp directory.
	TempDir string

	// Graceful shutdown drain timeout (seconds)
	DrainTimeout int

	// Field length bounds (spec.md §6 "read from configuration at startup").
	MinNameLength        int
	MaxNameLength        int
	MinContentLength     int
	MaxContentLength     int
	MinDescriptionLength int
	MaxDescriptionLength int

	// Listing page sizes, capped per entity kind.
	DefaultPageSize int
	MaxPageSize     int

	// Throttling windows per action bucket.
	ThrottleNewContent    ThrottleLimit
	ThrottleEditContent   ThrottleLimit
	ThrottleEditPrivilege ThrottleLimit
	ThrottleVote          ThrottleLimit
	ThrottleSubscribe     ThrottleLimit

	// Default privileges granted automatically to a newly-registered user,
	// and the positive-accumulator baseline for any authenticated user
	// (spec.md §4.4-4.5).
	NewThreadDefault            DefaultPrivilegeGrant
	NewMessageDefault           DefaultPrivilegeGrant
	DefaultLevelForLoggedInUser int

	// How long a vote reset grace period lasts before a vote is
	// considered final, and how many distinct visitors may view a
	// message/thread since its last edit before the edit is considered
	// "seen" (spec.md §4.8/§9).
	ResetVoteExpiresIn       time.Duration
	MaxVisitorsSinceLastEdit int

	// CollationLocale is the BCP-47 language tag internal/collation uses
	// for case/accent-insensitive name and content comparison.
	CollationLocale string

	// Admin
	RequireJustification bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode: ModeProd,
		Listener: ListenerConfig{
			Port:              8080,
			EnablePlainText:   true,
			EnableTLS:         true,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ManagementListener: ListenerConfig{
			EnablePlainText: true,
			EnableTLS:       true,
		},
		AdminOIDCRole:     "admin",
		ModeratorOIDCRole: "moderator",
		MaxBodySize:       1 * 1024 * 1024,
		DrainTimeout:      30,

		MinNameLength:        3,
		MaxNameLength:        64,
		MinContentLength:     1,
		MaxContentLength:     64 * 1024,
		MinDescriptionLength: 0,
		MaxDescriptionLength: 4096,

		DefaultPageSize: 20,
		MaxPageSize:     100,

		ThrottleNewContent:    ThrottleLimit{MaxCount: 5, PeriodSeconds: 60},
		ThrottleEditContent:   ThrottleLimit{MaxCount: 10, PeriodSeconds: 60},
		ThrottleEditPrivilege: ThrottleLimit{MaxCount: 20, PeriodSeconds: 60},
		ThrottleVote:          ThrottleLimit{MaxCount: 30, PeriodSeconds: 60},
		ThrottleSubscribe:     ThrottleLimit{MaxCount: 20, PeriodSeconds: 60},

		NewThreadDefault:            DefaultPrivilegeGrant{Value: 1, Duration: 24 * time.Hour},
		NewMessageDefault:           DefaultPrivilegeGrant{Value: 1, Duration: 24 * time.Hour},
		DefaultLevelForLoggedInUser: 1,

		ResetVoteExpiresIn:       5 * time.Minute,
		MaxVisitorsSinceLastEdit: 10,

		CollationLocale: "en",
	}
}

// ResolvedTempDir returns the configured temp directory or the platform default.
func (c *Config) ResolvedTempDir() string {
	if c == nil {
		return os.TempDir()
	}
	if dir := strings.TrimSpace(c.TempDir); dir != "" {
		return dir
	}
	return os.TempDir()
}
