package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

const TokenTypeBearer = "bearer"

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration, issuer string) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

// WithClock replaces the clock used for issuing and validating tokens.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	i.now = now
	return i
}

func (i *JWTIssuer) Issue(principal domain.Principal) (domain.AccessToken, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := accessClaims{
		Email: principal.Email,
		Role:  string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(principal.ID, 10),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return domain.AccessToken{}, err
	}

	return domain.AccessToken{Token: signed, TokenType: TokenTypeBearer, ExpiresAt: expiresAt}, nil
}

func (i *JWTIssuer) Parse(token string) (domain.TokenClaims, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return domain.TokenClaims{}, fmt.Errorf("%w: invalid subject", domain.ErrUnauthenticated)
	}

	return domain.TokenClaims{PrincipalID: id, Email: claims.Email, Role: domain.Role(claims.Role)}, nil
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)
