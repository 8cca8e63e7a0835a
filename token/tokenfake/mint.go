// Package tokenfake mints backend-shaped bearer tokens for tests.
package tokenfake

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/taskflow/internal/config"
)

const signingKey = "not-verified-by-the-client"

// Mint returns an HS256 token carrying role under the backend's role claim URI.
func Mint(role string, exp time.Time) string {
	return MintClaims(jwtlib.MapClaims{
		config.DefaultRoleClaim: role,
		"sub":                   "user-1",
		"unique_name":           "jdoe",
		"exp":                   exp.Unix(),
	})
}

// MintClaims signs arbitrary claims
func MintClaims(claims jwtlib.MapClaims) string {
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		panic("tokenfake: " + err.Error())
	}
	return signed
}
