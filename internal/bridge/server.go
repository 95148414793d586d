package bridge

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dashlens/dashlens/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const defaultShutdownTimeout = 5 * time.Second

// Server exposes a Service to the front end over gRPC.
type Server struct {
	address         string
	service         BridgeServer
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewServer builds a Server listening on address. A non-positive
// shutdownTimeout falls back to five seconds.
func NewServer(address string, l logging.Logger, svc BridgeServer, shutdownTimeout time.Duration) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &Server{
		address:         address,
		service:         svc,
		logger:          l.With("module", "bridge_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully. It
// returns only after in-flight calls have finished or the shutdown timeout
// has forced them off.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.recoveryInterceptor,
		s.requestIDInterceptor,
		s.loggingInterceptor,
	))

	RegisterBridgeServer(srv, s.service)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	serveDone := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
		case <-serveDone:
			return
		}
		s.logger.Info(ctx, "Stopping bridge server...")
		hs.Shutdown()
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting bridge server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(serveDone)
	<-stopped

	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func (s *Server) stop(srv *grpc.Server) {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	t := time.NewTimer(s.shutdownTimeout)
	defer t.Stop()

	select {
	case <-done:
	case <-t.C:
		s.logger.Warn(context.Background(), "graceful stop timed out, forcing")
		srv.Stop()
		<-done
	}
}
