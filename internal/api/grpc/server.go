package grpc

import (
	"context"
	"time"

	"ombrello-backend/internal/api/grpc/interceptor"
	"ombrello-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check name reported for the rental API.
const ServiceName = "ombrello.v1.RentalAPI"

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewServer builds the gRPC server carrying the standard health service and
// reflection for grpcurl.
func NewServer(hs *health.Server) *grpc.Server {
	logging := interceptor.NewLoggingInterceptor()
	s := grpc.NewServer(
		grpc.UnaryInterceptor(logging.Unary()),
		grpc.StreamInterceptor(logging.Stream()),
	)
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)
	return s
}

// HealthChecker mirrors database reachability into the health server.
type HealthChecker struct {
	health *health.Server
	db     Pinger
}

func NewHealthChecker(hs *health.Server, db Pinger) *HealthChecker {
	return &HealthChecker{health: hs, db: db}
}

// Check pings the database once and updates the serving status.
func (c *HealthChecker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if err := c.db.PingContext(ctx); err != nil {
		logger.WarnContext(ctx, "Database health check failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.health.SetServingStatus("", st)
	c.health.SetServingStatus(ServiceName, st)
	return st
}

// Run checks every interval until ctx is done, then marks the server as
// shutting down.
func (c *HealthChecker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			c.health.Shutdown()
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval/2)
			c.Check(pingCtx)
			cancel()
		}
	}
}
