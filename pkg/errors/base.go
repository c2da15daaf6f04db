package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// OK represents a successful operation.
var OK = Register(&Errno{
	Code:     0,
	HTTP:     http.StatusOK,
	GRPCCode: codes.OK,
	Message:  "Success",
})

// Request errors (category 01).
var (
	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryRequest, 0),
		HTTP:     http.StatusBadRequest,
		GRPCCode: codes.InvalidArgument,
		Message:  "Bad request",
	})

	// ErrInvalidParam indicates an invalid parameter.
	ErrInvalidParam = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryRequest, 1),
		HTTP:     http.StatusBadRequest,
		GRPCCode: codes.InvalidArgument,
		Message:  "Invalid parameter",
	})

	// ErrMissingParam indicates a missing required parameter.
	ErrMissingParam = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryRequest, 2),
		HTTP:     http.StatusBadRequest,
		GRPCCode: codes.InvalidArgument,
		Message:  "Missing required parameter",
	})

	// ErrValidationFailed indicates validation failure.
	ErrValidationFailed = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryRequest, 3),
		HTTP:     http.StatusBadRequest,
		GRPCCode: codes.InvalidArgument,
		Message:  "Validation failed",
	})
)

// Authentication errors (category 02).
var (
	// ErrUnauthorized indicates the request is not authenticated.
	ErrUnauthorized = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryAuth, 0),
		HTTP:     http.StatusUnauthorized,
		GRPCCode: codes.Unauthenticated,
		Message:  "Unauthorized",
	})

	// ErrInvalidToken indicates the token is invalid.
	ErrInvalidToken = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryAuth, 1),
		HTTP:     http.StatusUnauthorized,
		GRPCCode: codes.Unauthenticated,
		Message:  "Invalid token",
	})

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryAuth, 2),
		HTTP:     http.StatusUnauthorized,
		GRPCCode: codes.Unauthenticated,
		Message:  "Token expired",
	})

	// ErrInvalidCredentials indicates invalid credentials.
	ErrInvalidCredentials = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryAuth, 3),
		HTTP:     http.StatusUnauthorized,
		GRPCCode: codes.Unauthenticated,
		Message:  "Invalid credentials",
	})
)

// Authorization errors (category 03).
var (
	// ErrForbidden indicates the request is forbidden.
	ErrForbidden = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryPermission, 0),
		HTTP:     http.StatusForbidden,
		GRPCCode: codes.PermissionDenied,
		Message:  "Forbidden",
	})

	// ErrNoPermission indicates no permission for the operation.
	ErrNoPermission = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryPermission, 1),
		HTTP:     http.StatusForbidden,
		GRPCCode: codes.PermissionDenied,
		Message:  "No permission",
	})
)

// Resource errors (category 04).
var (
	// ErrNotFound indicates the resource is not found.
	ErrNotFound = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryResource, 0),
		HTTP:     http.StatusNotFound,
		GRPCCode: codes.NotFound,
		Message:  "Resource not found",
	})

	// ErrRecordNotFound indicates the record is not found.
	ErrRecordNotFound = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryResource, 1),
		HTTP:     http.StatusNotFound,
		GRPCCode: codes.NotFound,
		Message:  "Record not found",
	})

	// ErrRouteNotFound indicates the route is not found.
	ErrRouteNotFound = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryResource, 2),
		HTTP:     http.StatusNotFound,
		GRPCCode: codes.NotFound,
		Message:  "Route not found",
	})
)

// Conflict errors (category 05).
var (
	// ErrAlreadyExists indicates the resource already exists.
	ErrAlreadyExists = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryConflict, 0),
		HTTP:     http.StatusConflict,
		GRPCCode: codes.AlreadyExists,
		Message:  "Resource already exists",
	})

	// ErrVersionConflict indicates a version conflict.
	ErrVersionConflict = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryConflict, 1),
		HTTP:     http.StatusConflict,
		GRPCCode: codes.Aborted,
		Message:  "Version conflict",
	})
)

// Rate limit errors (category 06).
var (
	// ErrTooManyRequests indicates too many requests.
	ErrTooManyRequests = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryRateLimit, 0),
		HTTP:     http.StatusTooManyRequests,
		GRPCCode: codes.ResourceExhausted,
		Message:  "Too many requests",
	})
)

// Internal errors (category 07).
var (
	// ErrInternal indicates an internal server error.
	ErrInternal = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryInternal, 0),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Internal,
		Message:  "Internal server error",
	})

	// ErrPanic indicates a service panic.
	ErrPanic = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryInternal, 1),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Internal,
		Message:  "Service panic",
	})
)

// Database errors (category 08).
var (
	// ErrDatabase indicates a database error.
	ErrDatabase = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryDatabase, 0),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Internal,
		Message:  "Database error",
	})

	// ErrDBConnection indicates database connection failure.
	ErrDBConnection = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryDatabase, 1),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Unavailable,
		Message:  "Database connection failed",
	})

	// ErrDBTransaction indicates database transaction failure.
	ErrDBTransaction = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryDatabase, 2),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Internal,
		Message:  "Database transaction failed",
	})
)

// Cache errors (category 09).
var (
	// ErrCache indicates a cache error.
	ErrCache = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryCache, 0),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Internal,
		Message:  "Cache error",
	})

	// ErrCacheMiss indicates cache miss.
	ErrCacheMiss = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryCache, 1),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.NotFound,
		Message:  "Cache miss",
	})
)

// Network errors (category 10).
var (
	// ErrServiceUnavailable indicates the service is unavailable.
	ErrServiceUnavailable = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryNetwork, 0),
		HTTP:     http.StatusServiceUnavailable,
		GRPCCode: codes.Unavailable,
		Message:  "Service unavailable",
	})
)

// Timeout errors (category 11).
var (
	// ErrTimeout indicates operation timeout.
	ErrTimeout = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryTimeout, 0),
		HTTP:     http.StatusGatewayTimeout,
		GRPCCode: codes.DeadlineExceeded,
		Message:  "Operation timeout",
	})

	// ErrContextCanceled indicates context canceled.
	ErrContextCanceled = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryTimeout, 1),
		HTTP:     499, // Client Closed Request
		GRPCCode: codes.Canceled,
		Message:  "Context canceled",
	})
)

// Configuration errors (category 12).
var (
	// ErrConfig indicates a configuration error.
	ErrConfig = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryConfig, 0),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Internal,
		Message:  "Configuration error",
	})

	// ErrConfigInvalid indicates invalid configuration.
	ErrConfigInvalid = Register(&Errno{
		Code:     MakeCode(ServiceCommon, CategoryConfig, 1),
		HTTP:     http.StatusInternalServerError,
		GRPCCode: codes.Internal,
		Message:  "Invalid configuration",
	})
)
