package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the API trusts about a caller after verifying the ID token.
type Identity struct {
	UserID string
	Email  string
}

// Verifier checks Firebase Auth ID tokens (RS256, keys from JWKS). A non-empty DevSecret also
// accepts HS256 tokens, which is how local development and tests mint tokens without Firebase.
type Verifier struct {
	keys      *Provider
	projectID string
	devSecret []byte
}

func NewVerifier(keys *Provider, projectID, devSecret string) *Verifier {
	v := &Verifier{keys: keys, projectID: projectID}
	if devSecret != "" {
		v.devSecret = []byte(devSecret)
	}
	return v
}

func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	var opts []jwt.ParserOption
	if v.projectID != "" {
		opts = append(opts,
			jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
			jwt.WithAudience(v.projectID),
		)
	}

	token, err := jwt.Parse(tokenString, v.keyFunc, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token has no subject")
	}
	email, _ := claims["email"].(string)

	return &Identity{UserID: sub, Email: email}, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.devSecret == nil {
			return nil, errors.New("HS256 token received but AUTH_DEV_SECRET is not configured")
		}
		return v.devSecret, nil
	case *jwt.SigningMethodRSA:
		if v.keys == nil {
			return nil, errors.New("RS256 token received but no JWKS provider is configured")
		}
		return v.keys.KeyFunc(token)
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}
