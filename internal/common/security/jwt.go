package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT(secret []byte) {
	TokenAuth = jwtauth.New("HS256", secret, nil)
}

// Identity is who the caller is, as asserted by the identity provider.
type Identity struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

func GenerateToken(id Identity, ttl time.Duration) (string, error) {
	if TokenAuth == nil {
		return "", errors.New("jwt signer not initialized")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": id.UserID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	setIfPresent(claims, "email", id.Email)
	setIfPresent(claims, "first_name", id.FirstName)
	setIfPresent(claims, "last_name", id.LastName)
	setIfPresent(claims, "profile_image_url", id.ProfileImageURL)

	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func setIfPresent(claims jwt.MapClaims, key, value string) {
	if value != "" {
		claims[key] = value
	}
}

// IdentityFromClaims requires a non-empty "sub"; profile claims are optional.
func IdentityFromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, errors.New("sub claim is missing or not a string")
	}
	return Identity{
		UserID:          sub,
		Email:           stringClaim(claims, "email"),
		FirstName:       stringClaim(claims, "first_name"),
		LastName:        stringClaim(claims, "last_name"),
		ProfileImageURL: stringClaim(claims, "profile_image_url"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
