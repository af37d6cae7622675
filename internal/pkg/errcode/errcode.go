package errcode

const (
	ErrUnknown = 20000000 + iota
	ErrUnauthorized
	ErrSessionExpired
	ErrNotFound
	ErrInvalid
	ErrInternal
	ErrInvalidFile
	ErrEvaluationFailed
	ErrPersistenceFailed
)
