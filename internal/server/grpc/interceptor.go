package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/decipline/internal/common"
	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/server/services"
	"github.com/dmitrijs2005/decipline/internal/shared"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userKey ctxKey = "user"

func userFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// toStatus converts a service error into a gRPC status carrying the same
// detail the HTTP API would send.
func toStatus(err error) error {
	code, detail := services.StatusOf(err)
	return status.Error(common.CodeFromHTTPStatus(code), detail)
}

// methodName strips the service prefix from a full method path.
// ok is false for calls addressed to any other service.
func methodName(fullMethod string) (string, bool) {
	return strings.CutPrefix(fullMethod, "/"+common.GRPCServiceName+"/")
}

type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authedStream) Context() context.Context { return s.ctx }

func bearerToken(ctx context.Context) (string, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get(common.AuthorizationMetadataKey)
	if len(values) == 0 || values[0] == "" {
		return "", shared.ErrorInvalidToken
	}
	token, ok := strings.CutPrefix(values[0], common.BearerPrefix)
	if !ok || token == "" {
		return "", shared.ErrorInvalidAuthheaderFormat
	}
	return token, nil
}

func (s *GRPCServer) accessTokenInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	name, ok := methodName(info.FullMethod)
	if !ok {
		return handler(srv, ss)
	}
	if m, known := s.methods[name]; !known || m.public {
		return handler(srv, ss)
	}

	token, err := bearerToken(ss.Context())
	if err != nil {
		return toStatus(err)
	}
	user, err := s.users.Authenticate(ss.Context(), token)
	if err != nil {
		return toStatus(err)
	}

	return handler(srv, &authedStream{ServerStream: ss, ctx: context.WithValue(ss.Context(), userKey, user)})
}

func (s *GRPCServer) accessLogInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)

	args := []any{
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	md, _ := metadata.FromIncomingContext(ss.Context())
	if ids := md.Get(common.RequestIDHeaderName); len(ids) > 0 {
		args = append(args, "request_id", ids[0])
	}
	s.logger.Info(ss.Context(), "rpc", args...)
	return err
}
