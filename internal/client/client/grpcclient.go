package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCClient calls the backend's gRPC service. Messages are
// google.protobuf.Struct values carrying the same JSON shapes as the HTTP API.
type GRPCClient struct {
	endpointURL string
	conn        grpc.ClientConnInterface
	closer      io.Closer
	opts        *options
}

type listTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AuthorizationMetadataKey)
	md.Set(common.AuthorizationMetadataKey, common.BearerValue(token))

	return metadata.NewOutgoingContext(ctx, md)
}

func requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = metadata.AppendToOutgoingContext(ctx, strings.ToLower(common.RequestIDHeaderName), uuid.NewString())
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL without transport security.
func NewGRPCClient(endpointURL string, opts ...Option) (*GRPCClient, error) {
	c := NewGRPCClientWithConn(nil, opts...)
	c.endpointURL = endpointURL
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewGRPCClientWithConn wraps an already established connection.
func NewGRPCClientWithConn(conn grpc.ClientConnInterface, opts ...Option) *GRPCClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &GRPCClient{conn: conn, opts: o}
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(requestIDInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.closer = conn
	return nil
}

func (s *GRPCClient) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *GRPCClient) Signup(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	var out models.AuthResult
	err := s.invoke(ctx, common.MethodSignup, "", creds, &out)
	return out, err
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	var out models.AuthResult
	err := s.invoke(ctx, common.MethodLogin, "", loginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (s *GRPCClient) Me(ctx context.Context, token string) (models.User, error) {
	var out models.User
	err := s.invoke(ctx, common.MethodGetMe, token, nil, &out)
	return out, err
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, token string, draft models.ProfileDraft) (models.User, error) {
	var out models.User
	err := s.invoke(ctx, common.MethodUpdateProfile, token, draft, &out)
	return out, err
}

func (s *GRPCClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	var out listTasksResponse
	if err := s.invoke(ctx, common.MethodListTasks, token, nil, &out); err != nil {
		return nil, err
	}
	if out.Tasks == nil {
		out.Tasks = []models.Task{}
	}
	return out.Tasks, nil
}

func (s *GRPCClient) GenerateTasks(ctx context.Context, token string) error {
	return s.invoke(ctx, common.MethodGenerateTasks, token, nil, nil)
}

func (s *GRPCClient) SetTaskCompleted(ctx context.Context, token string, id int64, completed bool) error {
	return s.invoke(ctx, common.MethodUpdateTask, token, completionRequest{ID: id, Completed: completed}, nil)
}

func (s *GRPCClient) Upgrade(ctx context.Context, token string) (models.User, error) {
	var out models.User
	err := s.invoke(ctx, common.MethodUpgrade, token, nil, &out)
	return out, err
}

func (s *GRPCClient) Advice(ctx context.Context, token string) (string, error) {
	var out adviceResponse
	if err := s.invoke(ctx, common.MethodGetAdvice, token, nil, &out); err != nil {
		return "", err
	}
	return out.Advice, nil
}

func (s *GRPCClient) invoke(ctx context.Context, method, token string, in, out any) error {
	ctx, cancel, err := s.opts.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	req, err := common.EncodeStruct(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", method, err)
	}
	if token != "" {
		ctx = withAccessToken(ctx, token)
	}

	reply := &structpb.Struct{}
	if err := s.conn.Invoke(ctx, common.FullMethod(method), req, reply); err != nil {
		s.opts.logger.Debug(ctx, "rpc failed", "method", method, "err", err)
		return s.mapError(err)
	}

	if out == nil {
		return nil
	}
	if err := common.DecodeStruct(reply, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", method, err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return &APIError{Status: common.HTTPStatusFromCode(st.Code()), Detail: st.Message()}
	}
}
