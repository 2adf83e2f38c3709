package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the authenticated account id.
	CtxKeyUserID ctxKey = "id"
	// CtxKeyClaims holds the full jwtx.Claims of the session.
	CtxKeyClaims ctxKey = "claims"
)

// UserIDFromContext returns the authenticated account id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
