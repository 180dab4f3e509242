package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Marga-Ghale/bpo-console/internal/config"
	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
)

// ============================================
// Auth Service
// ============================================

// AuthService validates the dashboard's token. Tokens are issued by the
// tracking backend; the console only checks them and forwards them.
type AuthService interface {
	ValidateToken(tokenString string) (*jwt.Token, error)
	GetUserIDFromToken(token *jwt.Token) (string, error)
	ParseUserID(tokenString string) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// GetUserIDFromToken reads "sub", falling back to the backend's numeric
// "user_id" claim.
func (s *authService) GetUserIDFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	if id := dropdown.Stringify(claims["user_id"]); id != "" {
		return id, nil
	}
	return "", ErrInvalidToken
}

func (s *authService) ParseUserID(tokenString string) (string, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	return s.GetUserIDFromToken(token)
}
