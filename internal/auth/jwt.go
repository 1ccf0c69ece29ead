package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
	ErrNotSeated    = errors.New("token is not bound to a game seat")
)

// Claims holds the JWT payload. Account tokens carry UserID only. Seat
// tokens also bind the bearer to one player in one game; guests get seat
// tokens with an empty UserID.
type Claims struct {
	UserID   string `json:"user_id,omitempty"`
	GameCode string `json:"game_code,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	jwt.RegisteredClaims
}

// Seated reports whether the claims name a game seat.
func (c *Claims) Seated() bool {
	return c.GameCode != "" && c.PlayerID != ""
}

// JWTManager handles token creation and validation.
type JWTManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	seatExpiry    time.Duration
}

// NewJWTManager creates a JWTManager with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		accessExpiry:  15 * time.Minute,
		refreshExpiry: 7 * 24 * time.Hour,
		seatExpiry:    12 * time.Hour,
	}
}

func (m *JWTManager) sign(claims *Claims, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(expiry))
	claims.IssuedAt = jwt.NewNumericDate(now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GenerateAccessToken creates a short-lived account token for the given user.
func (m *JWTManager) GenerateAccessToken(userID string) (string, error) {
	return m.sign(&Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}, m.accessExpiry)
}

// GenerateRefreshToken creates a long-lived account token.
func (m *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	return m.sign(&Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}, m.refreshExpiry)
}

// GenerateSeatToken creates a token that authorizes actions for one seat.
// It outlives a typical match so a player can reconnect after dropping.
func (m *JWTManager) GenerateSeatToken(userID, gameCode, playerID string) (string, error) {
	return m.sign(&Claims{
		UserID:           userID,
		GameCode:         gameCode,
		PlayerID:         playerID,
		RegisteredClaims: jwt.RegisteredClaims{Subject: playerID},
	}, m.seatExpiry)
}

// ValidateToken parses and validates a JWT string, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenPair holds an access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// GenerateTokenPair creates both account tokens for a user.
func (m *JWTManager) GenerateTokenPair(userID string) (*TokenPair, error) {
	access, err := m.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := m.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(m.accessExpiry.Seconds()),
	}, nil
}
