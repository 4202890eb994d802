// Package grpc assembles the gRPC edge: health checking and reflection
// registered on the same server the HTTP edge shares a port with
// (internal/cmd/serve.StartSinglePortHTTPAndGRPC).
//
// The teacher's gRPC surface is a protoc-generated service tied to its
// own domain; regenerating protobuf stubs for the forum's commands is
// out of reach without running the Go toolchain (DESIGN.md explains the
// constraint). Rather than leave the interceptor-wrapped grpc.Server
// with nothing registered on it, this package gives it the standard
// gRPC health-checking and reflection services, both shipped as
// already-built packages of the same google.golang.org/grpc module the
// teacher depends on, so the interceptors run against real RPCs instead
// of never firing.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/chirino/forumcore/internal/security"
)

// ServiceName is the health-checked service name reported for the forum
// core's gRPC edge.
const ServiceName = "forumcore"

// Server bundles the registered grpc.Server and the health registry used
// to flip readiness as the server's own lifecycle progresses.
type Server struct {
	*grpc.Server
	health *health.Server
}

// NewServer builds a grpc.Server wired with the identity-resolving
// interceptors, the standard health-checking service (NOT_SERVING until
// SetServing(true) is called), and server reflection for ad-hoc clients
// like grpcurl.
func NewServer(resolver *security.TokenResolver) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(security.GRPCUnaryInterceptor(resolver)),
		grpc.ChainStreamInterceptor(security.GRPCStreamInterceptor(resolver)),
	)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	return &Server{Server: s, health: hs}
}

// SetServing flips the health service's reported status for ServiceName,
// mirroring the HTTP edge's /ready flag.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
}
