package errors

import "google.golang.org/grpc/codes"

// Journal service errors (service 20).
var (
	ErrEntryNotFound     = Register(New(MakeCode(ServiceJournal, CategoryResource, 1), 404, codes.NotFound, "Entry not found"))
	ErrChecklistNotFound = Register(New(MakeCode(ServiceJournal, CategoryResource, 2), 404, codes.NotFound, "Checklist not found"))
	ErrPlanNotFound      = Register(New(MakeCode(ServiceJournal, CategoryResource, 3), 404, codes.NotFound, "Plan not found"))
	ErrInvalidDay        = Register(New(MakeCode(ServiceJournal, CategoryRequest, 1), 400, codes.InvalidArgument, "Invalid day, expected YYYY-MM-DD"))
	ErrInvalidMood       = Register(New(MakeCode(ServiceJournal, CategoryRequest, 2), 400, codes.InvalidArgument, "Invalid mood value"))
	ErrInvalidIntensity  = Register(New(MakeCode(ServiceJournal, CategoryRequest, 3), 400, codes.InvalidArgument, "Craving intensity must be between 1 and 10"))
	ErrEmptyEntryBody    = Register(New(MakeCode(ServiceJournal, CategoryRequest, 4), 400, codes.InvalidArgument, "Entry body must not be empty"))
)

// Advisor service errors (service 21).
var (
	ErrEmptyQuestion        = Register(New(MakeCode(ServiceAdvisor, CategoryRequest, 1), 400, codes.InvalidArgument, "Question must not be empty"))
	ErrGuideUnavailable     = Register(New(MakeCode(ServiceAdvisor, CategoryInternal, 1), 500, codes.Internal, "Guide document unavailable"))
	ErrModelCallFailed      = Register(New(MakeCode(ServiceAdvisor, CategoryNetwork, 1), 502, codes.Unavailable, "Model call failed"))
	ErrConversationNotFound = Register(New(MakeCode(ServiceAdvisor, CategoryResource, 1), 404, codes.NotFound, "Conversation not found"))
	ErrConversationConflict = Register(New(MakeCode(ServiceAdvisor, CategoryConflict, 1), 409, codes.Aborted, "Conversation was updated concurrently"))
)

// Identity service errors (service 22).
var (
	ErrEmailTaken      = Register(New(MakeCode(ServiceIdentity, CategoryConflict, 1), 409, codes.AlreadyExists, "Email already registered"))
	ErrAccountNotFound = Register(New(MakeCode(ServiceIdentity, CategoryResource, 1), 404, codes.NotFound, "Account not found"))
	ErrWeakPassword    = Register(New(MakeCode(ServiceIdentity, CategoryRequest, 1), 400, codes.InvalidArgument, "Password must be at least 8 characters"))
)
