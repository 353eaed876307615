package logging

import (
	"context"

	"github.com/samber/oops"
)

// LogError logs err at error level. Errors built with oops additionally
// contribute their code and context attributes.
func LogError(ctx context.Context, l Logger, msg string, err error) {
	if err == nil {
		return
	}
	attrs := []any{"error", err.Error()}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if c := oopsErr.Context(); len(c) > 0 {
			attrs = append(attrs, "context", c)
		}
	}
	l.Error(ctx, msg, attrs...)
}
