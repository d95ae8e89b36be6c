package middlewarex

import "context"

type ctxKey string

const (
	ctxViewerID ctxKey = "viewer_id"
)

func WithViewerID(ctx context.Context, viewerID string) context.Context {
	return context.WithValue(ctx, ctxViewerID, viewerID)
}

// ViewerID is the caller's user id, when the request carried one.
func ViewerID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxViewerID).(string)
	return v, ok && v != ""
}
