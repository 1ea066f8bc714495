package services

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"moderation-api/internal/config"
	"moderation-api/internal/constants"
	"moderation-api/internal/models"
)

type JWTClaims struct {
	UserID   uuid.UUID      `json:"user_id"`
	Username string         `json:"username"`
	Role     constants.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	accessTokenExpiry time.Duration
	secretKey         []byte
}

func NewJWTService() *JWTService {
	// Parse expiry once during service creation
	expiry, err := time.ParseDuration(config.Moderation.Token.Access.Expiry)
	if err != nil {
		// Use default if parsing fails
		expiry = 15 * time.Minute
	}

	return &JWTService{
		accessTokenExpiry: expiry,
		secretKey:         []byte(os.Getenv("JWT_SECRET")),
	}
}

// GenerateAccessToken creates a signed JWT for the given user
func (s *JWTService) GenerateAccessToken(user models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "moderation-api",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken parses and validates a JWT access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// TokenResponse represents the response structure for token operations
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// NewTokenResponse wraps a signed token in the standard bearer envelope
func (s *JWTService) NewTokenResponse(accessToken string) *TokenResponse {
	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTokenExpiry.Seconds()),
	}
}
