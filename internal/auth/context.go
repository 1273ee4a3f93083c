package auth

import (
	"context"

	"github.com/fekuna/omnipos-retail-service/pkg/middleware"
	"google.golang.org/grpc/metadata"
)

const HeaderIdempotencyKey = "idempotency-key"

// GetUserID returns the operator (cashier or admin) making the call, "" when anonymous.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.UserIDKey).(string); ok {
		return val
	}
	return fromMetadata(ctx, middleware.HeaderUserID)
}

// GetLanguage returns the caller's accept-language value, defaulting to English.
func GetLanguage(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.LanguageKey).(string); ok && val != "" {
		return val
	}
	if val := fromMetadata(ctx, middleware.HeaderAcceptLanguage); val != "" {
		return val
	}
	return "en"
}

func GetIdempotencyKey(ctx context.Context) string {
	return fromMetadata(ctx, HeaderIdempotencyKey)
}

func fromMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(key); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
