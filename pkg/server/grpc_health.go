package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// HealthServer runs the standard gRPC health service so orchestrators can
// probe the gateway without speaking HTTP.
type HealthServer struct {
	grpcServer *grpc.Server
	health     *health.Server
	port       int
	logger     *logrus.Logger
}

// NewHealthServer creates a health server for port. It reports NOT_SERVING
// until SetServing(true) is called.
func NewHealthServer(port int, logger *logrus.Logger) *HealthServer {
	s := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             15 * time.Second,
			PermitWithoutStream: true,
		}),
	)
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		grpcServer: s,
		health:     hs,
		port:       port,
		logger:     logger,
	}
}

// Start listens on the configured port and serves until Stop.
func (h *HealthServer) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", h.port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", h.port, err)
	}
	return h.Serve(lis)
}

// Serve serves the health service on lis.
func (h *HealthServer) Serve(lis net.Listener) error {
	h.logger.WithFields(logrus.Fields{
		"addr": lis.Addr().String(),
	}).Info("gRPC health server listening")

	if err := h.grpcServer.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// SetServing flips the overall serving status.
func (h *HealthServer) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
}

// Stop marks the service NOT_SERVING and stops gracefully, forcing the stop
// when ctx expires first.
func (h *HealthServer) Stop(ctx context.Context) {
	h.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		h.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		h.logger.Info("gRPC health server stopped gracefully")
	case <-ctx.Done():
		h.logger.Warn("Graceful shutdown timeout, forcing stop...")
		h.grpcServer.Stop()
	}
}
