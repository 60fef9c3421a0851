package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/model"
)

type JWTService interface {
	GenerateAccessToken(businessID uuid.UUID, phone string) (string, time.Time, error)
	GenerateRefreshToken(businessID uuid.UUID) (string, error)
	ValidateToken(token string) (*model.TokenClaims, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
}

type JWTConfig struct {
	Secret             string
	RefreshSecret      string
	ExpiryHours        int
	RefreshExpiryHours int
}

type jwtService struct {
	cfg JWTConfig
}

func NewJWTService(cfg JWTConfig) JWTService {
	return &jwtService{cfg: cfg}
}

func (s *jwtService) GenerateAccessToken(businessID uuid.UUID, phone string) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.ExpiryHours) * time.Hour)
	claims := jwt.MapClaims{
		"business_id": businessID.String(),
		"phone":       phone,
		"exp":         expiresAt.Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *jwtService) GenerateRefreshToken(businessID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"business_id": businessID.String(),
		"exp":         time.Now().Add(time.Duration(s.cfg.RefreshExpiryHours) * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenStr string) (*model.TokenClaims, error) {
	claims, err := s.parse(tokenStr, s.cfg.Secret)
	if err != nil {
		return nil, err
	}

	businessID, err := uuid.Parse(claimString(claims, "business_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid business_id claim: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("missing expiry claim")
	}

	return &model.TokenClaims{
		BusinessID: businessID,
		Phone:      claimString(claims, "phone"),
		ExpiresAt:  exp.Time,
	}, nil
}

func (s *jwtService) ValidateRefreshToken(tokenStr string) (uuid.UUID, error) {
	claims, err := s.parse(tokenStr, s.cfg.RefreshSecret)
	if err != nil {
		return uuid.Nil, err
	}

	businessID, err := uuid.Parse(claimString(claims, "business_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid business_id claim: %w", err)
	}
	return businessID, nil
}

func (s *jwtService) parse(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
