// Package grpc exposes the development server's account, task and advice
// operations over gRPC. Requests and replies are google.protobuf.Struct
// messages, so no generated stubs are needed on either side.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/decipline/internal/logging"
	"github.com/dmitrijs2005/decipline/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address string
	users   *services.UserService
	tasks   *services.TaskService
	advice  *services.AdviceService
	logger  logging.Logger
	methods map[string]method
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService, as *services.AdviceService) *GRPCServer {
	s := &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		tasks:   ts,
		advice:  as,
	}
	s.methods = s.routes()
	return s
}

// NewServer builds a grpc.Server that routes every call through the
// method table. It does not listen.
func (s *GRPCServer) NewServer() *grpc.Server {
	return grpc.NewServer(
		grpc.UnknownServiceHandler(s.handle),
		grpc.ChainStreamInterceptor(s.accessLogInterceptor, s.accessTokenInterceptor),
	)
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
