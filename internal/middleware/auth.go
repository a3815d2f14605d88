package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/mentorboard/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ReportClaimsKey is the context key for the claims of a validated report token.
const ReportClaimsKey contextKey = "report_claims"

// GetReportClaims extracts report token claims from the context.
// Returns nil if the request carried no token.
func GetReportClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ReportClaimsKey).(*auth.Claims)
	return claims
}

// WithReportClaims returns a copy of ctx carrying claims.
func WithReportClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ReportClaimsKey, claims)
}

// ReportAccess returns an interceptor that validates a report token when one is sent.
// Requests without an Authorization header pass through untouched; a malformed or
// invalid token is rejected. Handlers decide whether claims are required.
// Install it on the report service only.
func ReportAccess(tokens *auth.ReportTokenManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			// Extract Authorization header
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return next(ctx, req)
			}

			// Parse Bearer token
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			// Validate token
			claims, err := tokens.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			// Call the next handler with the claims attached
			return next(WithReportClaims(ctx, claims), req)
		}
	}
}
