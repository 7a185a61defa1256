package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/pkg/log"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const DefaultTTL = 30 * time.Minute

var ErrMissingSecret = errors.New("jwt: signing secret is empty")

type (
	JWTService interface {
		GenerateToken(subject string) (string, error)
		GenerateTokenWithTTL(subject string, ttl time.Duration) (string, error)
		// ValidateToken returns the token subject, or domain.ErrTokenInvalid for any failure.
		ValidateToken(token string) (string, error)
	}

	jwtService struct {
		secretKey []byte
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

// NewJWTService builds the token service around a secret loaded once at startup.
// A non-positive ttl falls back to DefaultTTL.
func NewJWTService(secret string, issuer string, ttl time.Duration) (JWTService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &jwtService{
		secretKey: []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

func (j *jwtService) GenerateToken(subject string) (string, error) {
	return j.GenerateTokenWithTTL(subject, j.ttl)
}

func (j *jwtService) GenerateTokenWithTTL(subject string, ttl time.Duration) (string, error) {
	now := j.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if t_.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

func (j *jwtService) ValidateToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t_Token, err := jwt.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		log.L.Debug("token rejected", zap.Error(err))
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}
	// exp is optional in RFC 7519 but not for our tokens.
	if claims.ExpiresAt == nil {
		log.L.Debug("token rejected", zap.String("reason", "missing exp"))
		return "", domain.ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		log.L.Debug("token rejected", zap.String("reason", "missing sub"))
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
