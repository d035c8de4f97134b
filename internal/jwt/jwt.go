package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
	"github.com/talkboard/talkboard/internal/logger"
)

// JwtService turns a token string into the acting identity and back.
// Token issuance lives with the identity provider; this service only mints
// tokens for tests and service-to-service calls.
type JwtService interface {
	NewToken(user domain.User) (string, error)
	ParseToken(tokenStr string) (*domain.User, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":       user.Id,
		"email":     user.Email,
		"admin":     user.Admin,
		"moderator": user.Moderator,
		"trusted":   user.Trusted,
		"exp":       time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("can't sign token", "err", err)
		return "", errors.New("can't create token")
	}
	return tokenString, nil
}

func (j *Jwt) ParseToken(tokenStr string) (*domain.User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Unexpected signing method", StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	user := &domain.User{Id: int64(uid)}
	user.Email, _ = claims["email"].(string)
	user.Admin, _ = claims["admin"].(bool)
	user.Moderator, _ = claims["moderator"].(bool)
	user.Trusted, _ = claims["trusted"].(bool)
	return user, nil
}
