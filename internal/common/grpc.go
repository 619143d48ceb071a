package common

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// GRPCServiceName is the fully qualified service the gRPC transport calls.
const GRPCServiceName = "decipline.v1.DeciplineService"

// gRPC method names.
const (
	MethodSignup        = "Signup"
	MethodLogin         = "Login"
	MethodGetMe         = "GetMe"
	MethodUpdateProfile = "UpdateProfile"
	MethodListTasks     = "ListTasks"
	MethodGenerateTasks = "GenerateTasks"
	MethodUpdateTask    = "UpdateTask"
	MethodUpgrade       = "Upgrade"
	MethodGetAdvice     = "GetAdvice"
)

// FullMethod returns the wire path of a method, e.g. /decipline.v1.DeciplineService/Login.
func FullMethod(name string) string {
	return "/" + GRPCServiceName + "/" + name
}

// HTTPStatusFromCode maps a gRPC status code onto the HTTP status the JSON
// API would have returned for the same failure.
func HTTPStatusFromCode(c codes.Code) int {
	switch c {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// CodeFromHTTPStatus is the inverse of HTTPStatusFromCode.
func CodeFromHTTPStatus(status int) codes.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	default:
		if status >= 200 && status < 300 {
			return codes.OK
		}
		return codes.Internal
	}
}
