package shared

// DomainError is an error with a stable machine-readable code. The HTTP
// layer maps codes onto status codes; messages are safe to show to
// operators.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string { return e.Message }

// NewDomainError builds a domain error with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across domains. Services wrap or return these
// directly; handlers translate the codes into HTTP statuses.
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrCrossProperty = NewDomainError("CROSS_PROPERTY", "Devices may only be linked within the same property")
	ErrAgentOffline  = NewDomainError("AGENT_OFFLINE", "No print agent connected for this property")
)
