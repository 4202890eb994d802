package serve

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/config"
	edgegrpc "github.com/chirino/forumcore/internal/edge/grpc"
	edgehttp "github.com/chirino/forumcore/internal/edge/http"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/events"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/metrics"
	"github.com/chirino/forumcore/internal/repository"
	"github.com/chirino/forumcore/internal/security"
)

// version is overridden at release build time via -ldflags.
var version = "dev"

var ready atomic.Bool

// Server holds the running server and its subsystems.
type Server struct {
	Config          *config.Config
	Repo            *repository.Repository
	Router          *gin.Engine
	GRPCServer      *grpc.Server
	Running         *RunningServers
	closeManagement func(context.Context) error
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.closeManagement != nil {
		_ = s.closeManagement(ctx)
	}
	return s.Running.Close(ctx)
}

func throttleLimits(cfg *config.Config) [5]authz.Limit {
	toLimit := func(l config.ThrottleLimit) authz.Limit {
		return authz.Limit{MaxCount: l.MaxCount, PeriodSeconds: l.PeriodSeconds}
	}
	var limits [5]authz.Limit
	limits[authz.NewContent] = toLimit(cfg.ThrottleNewContent)
	limits[authz.EditContent] = toLimit(cfg.ThrottleEditContent)
	limits[authz.EditPrivileges] = toLimit(cfg.ThrottleEditPrivilege)
	limits[authz.Vote] = toLimit(cfg.ThrottleVote)
	limits[authz.Subscribe] = toLimit(cfg.ThrottleSubscribe)
	return limits
}

// StartServer initializes the entity store, authorization layer, and
// command/edge layers, then starts HTTP+gRPC on a single port. Use
// cfg.Listener.Port=0 for a random port. Actual port: Server.Running.Port.
func StartServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log.Info("Starting forum core", "httpPort", cfg.Listener.Port, "collation", cfg.CollationLocale)

	metricsLabels, err := security.ParseMetricsLabels(cfg.MetricsLabels)
	if err != nil {
		return nil, fmt.Errorf("invalid --metrics-labels: %w", err)
	}
	security.InitMetrics(metricsLabels)
	reg := prometheus.WrapRegistererWith(metricsLabels, prometheus.DefaultRegisterer)
	domainMetrics := metrics.New(reg)

	collator := collation.New(cfg.CollationLocale)
	ec := entitycollection.New(collator)

	bus := events.NewBus()
	bus.AddReadObserver(domainMetrics)
	bus.AddWriteObserver(domainMetrics)

	authorizer := authz.NewAuthorizer(ec, throttleLimits(cfg))
	repo := repository.New(ec, authorizer, bus, ids.UUIDGenerator{})
	repo.ResetVoteExpiresIn = cfg.ResetVoteExpiresIn

	gin.SetMode(gin.ReleaseMode)
	resolver := security.NewTokenResolver(cfg)
	router := edgehttp.NewRouter(cfg, resolver, repo, ec, version)
	if cfg.CORSEnabled {
		router.Use(corsMiddleware(cfg.CORSOrigins))
	}
	router.Use(maxBodySizeMiddleware(cfg.MaxBodySize))

	grpcServer := edgegrpc.NewServer(resolver)

	mgmtHandlers := func(r *gin.Engine) {
		r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
		r.GET("/ready", func(c *gin.Context) {
			if ready.Load() {
				c.JSON(http.StatusOK, gin.H{"status": "ready"})
			} else {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
			}
		})
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	var closeManagement func(context.Context) error
	if cfg.ManagementListenerEnabled {
		mgmtRouter := gin.New()
		mgmtRouter.Use(gin.Recovery())
		if cfg.ManagementAccessLog {
			mgmtRouter.Use(security.AccessLogMiddleware())
		}
		mgmtHandlers(mgmtRouter)
		mgmtCfg := cfg.ManagementListener
		mgmtCfg.TLSCertFile = cfg.Listener.TLSCertFile
		mgmtCfg.TLSKeyFile = cfg.Listener.TLSKeyFile
		_, closeManagement, err = startManagementServer(mgmtCfg, mgmtRouter)
		if err != nil {
			return nil, fmt.Errorf("failed to start management server: %w", err)
		}
	} else {
		mgmtHandlers(router)
	}

	running, err := StartSinglePortHTTPAndGRPC(ctx, cfg.Listener, router, grpcServer.Server)
	if err != nil {
		return nil, err
	}

	log.Info("Server listening",
		"port", running.Port,
		"plaintext", cfg.Listener.EnablePlainText,
		"tls", cfg.Listener.EnableTLS,
	)

	ready.Store(true)
	grpcServer.SetServing(true)
	return &Server{
		Config:          cfg,
		Repo:            repo,
		Router:          router,
		GRPCServer:      grpcServer.Server,
		Running:         running,
		closeManagement: closeManagement,
	}, nil
}
