package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
)

// AuthorityUser is granted to every student account.
const AuthorityUser = "ROLE_USER"

// ErrInvalidToken is returned for any token that fails parsing or validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller's login in the subject and a comma-separated authority list.
type Claims struct {
	jwt.RegisteredClaims
	Auth string `json:"auth"`
}

// Authorities splits the auth claim.
func (c *Claims) Authorities() []string {
	if c.Auth == "" {
		return nil
	}
	parts := strings.Split(c.Auth, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasAuthority reports whether the token grants authority.
func (c *Claims) HasAuthority(authority string) bool {
	return slices.Contains(c.Authorities(), authority)
}

// AuthService issues and validates identity tokens. Credentials are handled
// by the external identity provider, so there is no login here.
type AuthService struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		expiry: cfg.JWTExpiry,
		now:    time.Now,
	}
}

// GenerateToken signs an HS256 token for login with the given authorities.
func (s *AuthService) GenerateToken(login string, authorities []string) (string, error) {
	if strings.TrimSpace(login) == "" {
		return "", errors.New("login is required")
	}
	now := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		Auth: strings.Join(authorities, ","),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
