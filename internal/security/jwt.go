package security

import (
	"crypto/rsa"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"auth-web-server/internal/util"
)

// SchemePrefix отличает наши токены от произвольных bearer-строк.
const SchemePrefix = "JWT "

const (
	// TokenTypeAccess : короткоживущий токен для защищённых вызовов
	TokenTypeAccess = "ACCESS"
	// TokenTypeRefresh : токен, единственное назначение которого — обмен на новую пару
	TokenTypeRefresh = "REFRESH"
)

// Claims : подписываемый набор полей {uid, sub, iss, exp, jti, iat, nbf, type}
type Claims struct {
	UID       string `json:"uid"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenCodec выпускает и проверяет подписанные токены.
// Ключевая пара задаётся один раз при старте и далее только читается,
// так что кодек безопасен для одновременного использования.
type TokenCodec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenCodec(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// RefreshTTL : время жизни refresh-токена, оно же TTL записи в кэше сессий
func (c *TokenCodec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

// Issue : выпускает токен заданного типа для пользователя.
// jti каждый раз случайный, exp = now + TTL типа, все метки времени в UTC.
func (c *TokenCodec) Issue(userID string, tokenType string) (string, error) {
	var ttl time.Duration
	switch tokenType {
	case TokenTypeAccess:
		ttl = c.accessTTL
	case TokenTypeRefresh:
		ttl = c.refreshTTL
	default:
		return "", fmt.Errorf("неподдерживаемый тип токена: %s", tokenType)
	}

	now := time.Now().UTC()
	claims := Claims{
		UID:       userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := jwtToken.SignedString(c.privateKey)
	if err != nil {
		util.LogError("ошибка подписи токена", err)
		return "", ErrSigning
	}

	return SchemePrefix + signed, nil
}

// Verify : разбирает и проверяет токен, требуя совпадения типа.
// Различает три вида отказа (формат, подпись/срок, тип), но все они
// должны уходить клиенту одним и тем же сигналом отказа в доступе.
// Допуска по времени нет: exp и nbf сравниваются с часами как есть.
func (c *TokenCodec) Verify(tokenString string, expectedType string) (*Claims, error) {
	if !strings.HasPrefix(tokenString, SchemePrefix) {
		return nil, ErrMalformedToken
	}
	tokenString = strings.TrimPrefix(tokenString, SchemePrefix)

	claims := &Claims{}
	jwtToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return c.publicKey, nil
	}, jwt.WithIssuer(c.issuer))

	if err != nil || !jwtToken.Valid {
		util.LogError("невалидный токен", err)
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		return nil, ErrTokenTypeMismatch
	}

	return claims, nil
}
