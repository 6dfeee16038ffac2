package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
)

// Claims are the bearer token claims consumed by the service.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret      []byte
	adminMarker string
}

// NewJWTVerifier creates a verifier for HS256 tokens signed with secret.
// adminMarker grants the admin role to emails containing it.
func NewJWTVerifier(secret []byte, adminMarker string) PrincipalVerifier {
	return &jwtVerifier{
		secret:      secret,
		adminMarker: adminMarker,
	}
}

// Verify parses and validates the token. Tokens must carry an expiry and an
// email claim.
func (v *jwtVerifier) Verify(tokenString string) (*authDomain.Principal, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: verifier has no secret", authDomain.ErrInvalidCredentials)
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authDomain.ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, authDomain.ErrInvalidCredentials
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", authDomain.ErrInvalidCredentials)
	}

	return &authDomain.Principal{
		Email: claims.Email,
		Role:  authDomain.ResolveRole(claims.Email, claims.Role, v.adminMarker),
	}, nil
}
