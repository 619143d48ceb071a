package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/decipline/internal/common"
	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/shared"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type method struct {
	public bool
	call   func(ctx context.Context, user *models.User, req *structpb.Struct) (any, error)
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Role    string `json:"role"`
	Subject string `json:"subject"`
	Goal    string `json:"goal"`
}

type completionRequest struct {
	ID        int64 `json:"id"`
	Completed *bool `json:"completed"`
}

type tasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

func (s *GRPCServer) routes() map[string]method {
	return map[string]method{
		common.MethodSignup:        {public: true, call: s.signup},
		common.MethodLogin:         {public: true, call: s.login},
		common.MethodGetMe:         {call: s.me},
		common.MethodUpdateProfile: {call: s.updateProfile},
		common.MethodListTasks:     {call: s.listTasks},
		common.MethodGenerateTasks: {call: s.generateTasks},
		common.MethodUpdateTask:    {call: s.updateTask},
		common.MethodUpgrade:       {call: s.upgrade},
		common.MethodGetAdvice:     {call: s.getAdvice},
	}
}

// handle serves every unary call: one request Struct in, one reply Struct out.
func (s *GRPCServer) handle(_ any, stream grpc.ServerStream) error {
	fullMethod, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return status.Error(codes.Internal, "method not found in stream")
	}
	name, ok := methodName(fullMethod)
	m, known := s.methods[name]
	if !ok || !known {
		return status.Errorf(codes.Unimplemented, "unknown method %s", fullMethod)
	}

	req := &structpb.Struct{}
	if err := stream.RecvMsg(req); err != nil {
		return err
	}

	ctx := stream.Context()
	out, err := m.call(ctx, userFrom(ctx), req)
	if err != nil {
		s.logger.Debug(ctx, "rpc failed", "method", name, "err", err)
		return toStatus(err)
	}

	reply, err := common.EncodeStruct(out)
	if err != nil {
		s.logger.Error(ctx, "failed to encode reply", "method", name, "err", err)
		return status.Error(codes.Internal, "Internal server error")
	}
	return stream.SendMsg(reply)
}

func decode(req *structpb.Struct, out any) error {
	if err := common.DecodeStruct(req, out); err != nil {
		return fmt.Errorf("%w: malformed request", shared.ErrorValidation)
	}
	return nil
}

func (s *GRPCServer) signup(ctx context.Context, _ *models.User, req *structpb.Struct) (any, error) {
	var in credentialsRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	token, user, err := s.users.Signup(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "signed up", "user_id", user.ID)
	return models.AuthView{Token: token, User: user.View()}, nil
}

func (s *GRPCServer) login(ctx context.Context, _ *models.User, req *structpb.Struct) (any, error) {
	var in credentialsRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	token, user, err := s.users.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return models.AuthView{Token: token, User: user.View()}, nil
}

func (s *GRPCServer) me(_ context.Context, user *models.User, _ *structpb.Struct) (any, error) {
	return user.View(), nil
}

func (s *GRPCServer) updateProfile(ctx context.Context, user *models.User, req *structpb.Struct) (any, error) {
	var in profileRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	updated, err := s.users.UpdateProfile(ctx, user.ID, in.Role, in.Subject, in.Goal)
	if err != nil {
		return nil, err
	}
	return updated.View(), nil
}

func (s *GRPCServer) listTasks(ctx context.Context, user *models.User, _ *structpb.Struct) (any, error) {
	tasks, err := s.tasks.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return tasksResponse{Tasks: tasks}, nil
}

func (s *GRPCServer) generateTasks(ctx context.Context, user *models.User, _ *structpb.Struct) (any, error) {
	tasks, err := s.tasks.Generate(ctx, user)
	if err != nil {
		return nil, err
	}
	return tasksResponse{Tasks: tasks}, nil
}

func (s *GRPCServer) updateTask(ctx context.Context, user *models.User, req *structpb.Struct) (any, error) {
	var in completionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.Completed == nil {
		return nil, fmt.Errorf("%w: completed is required", shared.ErrorValidation)
	}
	return s.tasks.SetCompleted(ctx, user.ID, in.ID, *in.Completed)
}

func (s *GRPCServer) upgrade(ctx context.Context, user *models.User, _ *structpb.Struct) (any, error) {
	updated, err := s.users.Upgrade(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return updated.View(), nil
}

func (s *GRPCServer) getAdvice(ctx context.Context, user *models.User, _ *structpb.Struct) (any, error) {
	text, err := s.advice.Advice(ctx, user)
	if err != nil {
		return nil, err
	}
	return adviceResponse{Advice: text}, nil
}
