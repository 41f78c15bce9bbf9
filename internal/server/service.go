package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Service serves a Gateway over HTTP until its context is cancelled.
type Service struct {
	addr    string
	gateway *Gateway
}

func NewService(addr string, gateway *Gateway) *Service {
	return &Service{addr: addr, gateway: gateway}
}

// Run listens on the configured address and blocks until ctx is done or
// the server fails.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln and shuts down gracefully when ctx is done.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.gateway.HTTPRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.gateway.logger.Info().Str("addr", ln.Addr().String()).Str("appliance", s.gateway.applianceAddr).Msg("gateway listening")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.gateway.logger.Info().Msg("gateway stopped")
	return nil
}
