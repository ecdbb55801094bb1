package errorx

type Code int

const (
	codeUnknown Code = iota + 100000
	BadRequest
	BadResponse
	PermissionDenied
	NotFound
	Unauthenticated
	AlreadyExists
	Internal
	Unavailable
	NotImplemented
	TooManyRequests
)
