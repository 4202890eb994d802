package serve

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/chirino/forumcore/internal/config"
)

// Command returns the serve sub-command.
func Command() *cli.Command {
	cfg := config.DefaultConfig()
	var readHeaderTimeoutSecs int = 5
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the forum core's HTTP and gRPC servers",
		CustomHelpTemplate: cli.CommandHelpTemplate + `NOTES:
   API key authentication is configured via environment variables — one per client ID:
   FORUMCORE_API_KEYS_<CLIENT_ID>=key1,key2,...

   Example:
   FORUMCORE_API_KEYS_AGENT_A=secret-key-1
   FORUMCORE_API_KEYS_AGENT_B=key-one,key-two
`,
		Flags: flags(&cfg, &readHeaderTimeoutSecs),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := cfg.ApplyEnvOverrides(); err != nil {
				return err
			}
			cfg.Listener.ReadHeaderTimeout = time.Duration(readHeaderTimeoutSecs) * time.Second
			cfg.ManagementListener.ReadHeaderTimeout = cfg.Listener.ReadHeaderTimeout
			cfg.ManagementListenerEnabled = cmd.IsSet("management-port")
			return run(config.WithContext(ctx, &cfg), cfg)
		},
	}
}

func flags(cfg *config.Config, readHeaderTimeoutSecs *int) []cli.Flag {
	return []cli.Flag{

		// ── Server ────────────────────────────────────────────────
		&cli.StringFlag{
			Name:        "tls-cert-file",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_TLS_CERT_FILE"),
			Destination: &cfg.Listener.TLSCertFile,
			Usage:       "TLS certificate file for single-port TLS mode",
		},
		&cli.StringFlag{
			Name:        "tls-key-file",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_TLS_KEY_FILE"),
			Destination: &cfg.Listener.TLSKeyFile,
			Usage:       "TLS private key file for single-port TLS mode",
		},
		&cli.IntFlag{
			Name:        "read-header-timeout-seconds",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_READ_HEADER_TIMEOUT_SECONDS"),
			Destination: readHeaderTimeoutSecs,
			Value:       *readHeaderTimeoutSecs,
			Usage:       "HTTP read header timeout in seconds",
		},
		&cli.StringFlag{
			Name:        "temp-dir",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_TEMP_DIR"),
			Destination: &cfg.TempDir,
			Usage:       "Directory for temporary files; defaults to OS temp directory",
		},
		&cli.BoolFlag{
			Name:        "management-access-log",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_MANAGEMENT_ACCESS_LOG"),
			Destination: &cfg.ManagementAccessLog,
			Usage:       "Enable HTTP access logging for management endpoints (/health, /ready, /metrics)",
		},
		&cli.BoolFlag{
			Name:        "admin-require-justification",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_ADMIN_REQUIRE_JUSTIFICATION"),
			Destination: &cfg.RequireJustification,
			Usage:       "Require justification for admin API calls",
		},
		&cli.BoolFlag{
			Name:        "cors-enabled",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_CORS_ENABLED"),
			Destination: &cfg.CORSEnabled,
			Usage:       "Enable CORS",
		},
		&cli.StringFlag{
			Name:        "cors-origins",
			Category:    "Server:",
			Sources:     cli.EnvVars("FORUMCORE_CORS_ORIGINS"),
			Destination: &cfg.CORSOrigins,
			Usage:       "Comma-separated list of allowed CORS origins (* for any)",
		},

		// ── Network Listener ──────────────────────────────────────
		&cli.IntFlag{
			Name:        "port",
			Category:    "Network Listener:",
			Sources:     cli.EnvVars("FORUMCORE_PORT"),
			Destination: &cfg.Listener.Port,
			Value:       cfg.Listener.Port,
			Usage:       "HTTP server port",
		},
		&cli.BoolFlag{
			Name:        "plain-text",
			Category:    "Network Listener:",
			Sources:     cli.EnvVars("FORUMCORE_PLAIN_TEXT"),
			Destination: &cfg.Listener.EnablePlainText,
			Value:       cfg.Listener.EnablePlainText,
			Usage:       "Enable plaintext HTTP/1.1 + h2c + gRPC",
		},
		&cli.BoolFlag{
			Name:        "tls",
			Category:    "Network Listener:",
			Sources:     cli.EnvVars("FORUMCORE_TLS"),
			Destination: &cfg.Listener.EnableTLS,
			Value:       cfg.Listener.EnableTLS,
			Usage:       "Enable TLS HTTP/1.1 + HTTP/2 + gRPC",
		},

		// ── Network Listener: Management ─────────────────────────
		&cli.IntFlag{
			Name:        "management-port",
			Category:    "Network Listener: Management:",
			Sources:     cli.EnvVars("FORUMCORE_MANAGEMENT_PORT"),
			Destination: &cfg.ManagementListener.Port,
			Value:       cfg.ManagementListener.Port,
			Usage:       "Dedicated port for health and metrics (0 = OS-assigned random port); when unset, served on the main port",
		},
		&cli.BoolFlag{
			Name:        "management-plain-text",
			Category:    "Network Listener: Management:",
			Sources:     cli.EnvVars("FORUMCORE_MANAGEMENT_PLAIN_TEXT"),
			Destination: &cfg.ManagementListener.EnablePlainText,
			Value:       cfg.ManagementListener.EnablePlainText,
			Usage:       "Enable plaintext HTTP for management server",
		},
		&cli.BoolFlag{
			Name:        "management-tls",
			Category:    "Network Listener: Management:",
			Sources:     cli.EnvVars("FORUMCORE_MANAGEMENT_TLS"),
			Destination: &cfg.ManagementListener.EnableTLS,
			Value:       cfg.ManagementListener.EnableTLS,
			Usage:       "Enable TLS for management server",
		},

		// ── Content bounds ────────────────────────────────────────
		&cli.IntFlag{
			Name:        "min-name-length",
			Category:    "Content:",
			Sources:     cli.EnvVars("FORUMCORE_MIN_NAME_LENGTH"),
			Destination: &cfg.MinNameLength,
			Value:       cfg.MinNameLength,
			Usage:       "Minimum length for user/thread/tag names",
		},
		&cli.IntFlag{
			Name:        "max-name-length",
			Category:    "Content:",
			Sources:     cli.EnvVars("FORUMCORE_MAX_NAME_LENGTH"),
			Destination: &cfg.MaxNameLength,
			Value:       cfg.MaxNameLength,
			Usage:       "Maximum length for user/thread/tag names",
		},
		&cli.IntFlag{
			Name:        "min-content-length",
			Category:    "Content:",
			Sources:     cli.EnvVars("FORUMCORE_MIN_CONTENT_LENGTH"),
			Destination: &cfg.MinContentLength,
			Value:       cfg.MinContentLength,
			Usage:       "Minimum message content length",
		},
		&cli.IntFlag{
			Name:        "max-content-length",
			Category:    "Content:",
			Sources:     cli.EnvVars("FORUMCORE_MAX_CONTENT_LENGTH"),
			Destination: &cfg.MaxContentLength,
			Value:       cfg.MaxContentLength,
			Usage:       "Maximum message content length",
		},
		&cli.IntFlag{
			Name:        "max-description-length",
			Category:    "Content:",
			Sources:     cli.EnvVars("FORUMCORE_MAX_DESCRIPTION_LENGTH"),
			Destination: &cfg.MaxDescriptionLength,
			Value:       cfg.MaxDescriptionLength,
			Usage:       "Maximum category description length",
		},
		&cli.IntFlag{
			Name:        "default-page-size",
			Category:    "Content:",
			Sources:     cli.EnvVars("FORUMCORE_DEFAULT_PAGE_SIZE"),
			Destination: &cfg.DefaultPageSize,
			Value:       cfg.DefaultPageSize,
			Usage:       "Default listing page size",
		},
		&cli.IntFlag{
			Name:        "max-page-size",
			Category:    "Content:",
			Sources:     cli.EnvVars("FORUMCORE_MAX_PAGE_SIZE"),
			Destination: &cfg.MaxPageSize,
			Value:       cfg.MaxPageSize,
			Usage:       "Maximum listing page size a caller may request",
		},


		// ── Authorization ─────────────────────────────────────────
		&cli.StringFlag{
			Name:        "oidc-issuer",
			Category:    "Authorization:",
			Sources:     cli.EnvVars("FORUMCORE_OIDC_ISSUER"),
			Destination: &cfg.OIDCIssuer,
			Usage:       "OIDC issuer URL (enables OIDC auth)",
		},
		&cli.StringFlag{
			Name:        "oidc-discovery-url",
			Category:    "Authorization:",
			Sources:     cli.EnvVars("FORUMCORE_OIDC_DISCOVERY_URL"),
			Destination: &cfg.OIDCDiscoveryURL,
			Usage:       "OIDC discovery URL (internal URL when issuer is not directly reachable)",
		},
		&cli.StringFlag{
			Name:        "roles-admin-oidc-role",
			Category:    "Authorization:",
			Sources:     cli.EnvVars("FORUMCORE_ROLES_ADMIN_OIDC_ROLE"),
			Destination: &cfg.AdminOIDCRole,
			Value:       cfg.AdminOIDCRole,
			Usage:       "OIDC role name that maps to admin permissions",
		},
		&cli.StringFlag{
			Name:        "roles-moderator-oidc-role",
			Category:    "Authorization:",
			Sources:     cli.EnvVars("FORUMCORE_ROLES_MODERATOR_OIDC_ROLE"),
			Destination: &cfg.ModeratorOIDCRole,
			Value:       cfg.ModeratorOIDCRole,
			Usage:       "OIDC role name that maps to moderator permissions",
		},

		// ── Throttling ────────────────────────────────────────────
		&cli.IntFlag{
			Name:        "throttle-new-content-max",
			Category:    "Throttling:",
			Sources:     cli.EnvVars("FORUMCORE_THROTTLE_NEW_CONTENT_MAX_COUNT"),
			Destination: &cfg.ThrottleNewContent.MaxCount,
			Value:       cfg.ThrottleNewContent.MaxCount,
			Usage:       "Max new threads/messages per throttle period",
		},
		&cli.IntFlag{
			Name:        "throttle-vote-max",
			Category:    "Throttling:",
			Sources:     cli.EnvVars("FORUMCORE_THROTTLE_VOTE_MAX_COUNT"),
			Destination: &cfg.ThrottleVote.MaxCount,
			Value:       cfg.ThrottleVote.MaxCount,
			Usage:       "Max votes per throttle period",
		},

		// ── Default privileges ────────────────────────────────────
		&cli.IntFlag{
			Name:        "default-level-for-logged-in-user",
			Category:    "Privileges:",
			Sources:     cli.EnvVars("FORUMCORE_DEFAULT_LEVEL_FOR_LOGGED_IN_USER"),
			Destination: &cfg.DefaultLevelForLoggedInUser,
			Value:       cfg.DefaultLevelForLoggedInUser,
			Usage:       "Positive-accumulator baseline privilege level for any authenticated user",
		},

		// ── Monitoring ────────────────────────────────────────────
		&cli.StringFlag{
			Name:        "metrics-labels",
			Category:    "Monitoring:",
			Sources:     cli.EnvVars("FORUMCORE_METRICS_LABELS"),
			Destination: &cfg.MetricsLabels,
			Value:       "service=forumcore",
			Usage:       "Comma-separated key=value pairs added as constant labels to all Prometheus metrics. Supports ${VAR} expansion.",
		},
	}
}

func run(ctx context.Context, cfg config.Config) error {
	srv, err := StartServer(ctx, &cfg)
	if err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutting down...")

	drainCtx, drainCancel := context.WithTimeout(context.Background(), time.Duration(cfg.DrainTimeout)*time.Second)
	defer drainCancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Error("Shutdown error", "err", err)
	}
	log.Info("Server stopped")
	return nil
}

// maxBodySizeMiddleware caps every request body at maxBodySize. The forum
// edge has no multipart/streaming upload route, so unlike the teacher's
// attachment-serving middleware this applies uniformly.
func maxBodySizeMiddleware(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		c.Next()
	}
}
