package logger

import "context"

// contextKey keeps this package's context values from colliding with
// other packages'.
type contextKey string

const (
	// RequestIDKey carries the request id into SQL tracing and workers
	RequestIDKey contextKey = "request_id"
	// PropertyIDKey carries the property scope of the request
	PropertyIDKey contextKey = "property_id"
	// EmployeeIDKey carries the acting employee of the request
	EmployeeIDKey contextKey = "employee_id"
)

// WithRequestID stamps the request id onto the context so downstream
// log lines (gorm traces included) can correlate with the access log.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithPropertyID stamps the property scope onto the context
func WithPropertyID(ctx context.Context, propertyID string) context.Context {
	return context.WithValue(ctx, PropertyIDKey, propertyID)
}

// WithEmployeeID stamps the acting employee onto the context
func WithEmployeeID(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, EmployeeIDKey, employeeID)
}

// GetRequestID returns the request id, or "" when the context has none
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

// GetPropertyID returns the property scope, or "" when unset
func GetPropertyID(ctx context.Context) string {
	v, _ := ctx.Value(PropertyIDKey).(string)
	return v
}

// GetEmployeeID returns the acting employee, or "" when unset
func GetEmployeeID(ctx context.Context) string {
	v, _ := ctx.Value(EmployeeIDKey).(string)
	return v
}
