package domain

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeBadPayload      ErrorCode = "BAD_PAYLOAD"
	ErrorCodeRunExists       ErrorCode = "RUN_EXISTS"
	ErrorCodeRelevanceFailed ErrorCode = "RELEVANCE_FAILED"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
