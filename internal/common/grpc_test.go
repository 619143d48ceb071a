package common

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/decipline.v1.DeciplineService/GetMe", FullMethod(MethodGetMe))
}

func TestStatusMappingRoundTrip(t *testing.T) {
	for _, status := range []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusTooManyRequests,
		http.StatusNotImplemented,
		http.StatusServiceUnavailable,
		http.StatusInternalServerError,
	} {
		assert.Equal(t, status, HTTPStatusFromCode(CodeFromHTTPStatus(status)), "status %d", status)
	}
	assert.Equal(t, codes.OK, CodeFromHTTPStatus(http.StatusCreated))
	assert.Equal(t, codes.InvalidArgument, CodeFromHTTPStatus(http.StatusUnprocessableEntity))
}

func TestBearerValue(t *testing.T) {
	assert.Equal(t, "Bearer abc", BearerValue("abc"))
}
