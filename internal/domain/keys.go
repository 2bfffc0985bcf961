package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
)

// UserIDFrom returns the signed-in user stored on ctx by the auth middleware, or "".
func UserIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(KeyUserID).(string); ok {
		return v
	}
	// gin.Context stores keys as plain strings.
	if v, ok := ctx.Value(string(KeyUserID)).(string); ok {
		return v
	}
	return ""
}
