package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/taskflow/internal/utils"
)

// FallbackRoleClaim is consulted when the configured role claim is absent
const FallbackRoleClaim = "role"

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrMissingClaim   = errors.New("missing claim")
)

// Claims is what the client reads out of a backend-issued bearer token.
// None of it is verified; it only steers which views are offered.
type Claims struct {
	Roles     []string  // Values of the role claim, as issued
	Subject   string    // sub, when present
	Name      string    // unique_name or name, when present
	ExpiresAt time.Time // exp
}

// Decode parses the payload of a three-part JWT without checking its signature.
// The role claim and exp must both be present.
func Decode(rawToken, roleClaim string) (Claims, error) {
	if strings.Count(rawToken, ".") != 2 {
		return Claims{}, fmt.Errorf("%w: expected header.payload.signature", ErrMalformedToken)
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("%w: error extracting claims", ErrMalformedToken)
	}

	roles := rolesFromClaim(claims[roleClaim])
	if len(roles) == 0 {
		roles = rolesFromClaim(claims[FallbackRoleClaim])
	}
	if len(roles) == 0 {
		return Claims{}, fmt.Errorf("%w: %s", ErrMissingClaim, roleClaim)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp == nil {
		return Claims{}, fmt.Errorf("%w: exp", ErrMissingClaim)
	}

	sub, _ := claims["sub"].(string)
	name, _ := claims["unique_name"].(string)
	if name == "" {
		name, _ = claims["name"].(string)
	}

	return Claims{
		Roles:     roles,
		Subject:   sub,
		Name:      name,
		ExpiresAt: exp.Time,
	}, nil
}

// rolesFromClaim accepts both a single string and an array of strings
func rolesFromClaim(v any) []string {
	switch claim := v.(type) {
	case string:
		if strings.TrimSpace(claim) == "" {
			return nil
		}
		return []string{claim}
	case []any:
		return utils.ToStringSlice(claim)
	default:
		return nil
	}
}
