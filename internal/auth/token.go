package auth

import (
	"strconv"
	"strings"
	"time"

	apperrors "event-platform/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 120 * time.Minute

type TokenIssuer interface {
	Issue(userID int) (string, error)
	Decode(token string) (int, error)
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, issuer string) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue 簽發 HS256 token，sub 為使用者 id 的十進位字串
func (m *TokenManager) Issue(userID int) (string, error) {
	if userID <= 0 {
		return "", apperrors.ErrInvalidInput
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Decode 驗證簽章與過期時間並回傳使用者 id；任何失敗都是 ErrUnauthenticated
func (m *TokenManager) Decode(tokenString string) (int, error) {
	if strings.TrimSpace(tokenString) == "" {
		return 0, apperrors.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthenticated
		}
		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return 0, apperrors.ErrUnauthenticated
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, apperrors.ErrUnauthenticated
	}
	return userID, nil
}

func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperrors.ErrUnauthenticated
	}
	return parts[1], nil
}
