package auth

import "context"

// SetUserIDForTest injects an account identity into the context for testing purposes.
func SetUserIDForTest(ctx context.Context, userID string) context.Context {
	return WithClaims(ctx, &Claims{UserID: userID})
}

// SetSeatForTest injects a seat identity into the context for testing purposes.
func SetSeatForTest(ctx context.Context, gameCode, playerID string) context.Context {
	return WithClaims(ctx, &Claims{GameCode: gameCode, PlayerID: playerID})
}
