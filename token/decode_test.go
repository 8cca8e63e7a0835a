package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/taskflow/internal/config"
	"github.com/jrsteele09/taskflow/token"
	"github.com/jrsteele09/taskflow/token/tokenfake"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("role claim uri", func(t *testing.T) {
		claims, err := token.Decode(tokenfake.Mint("Teacher", exp), config.DefaultRoleClaim)
		require.NoError(t, err)
		require.Equal(t, []string{"Teacher"}, claims.Roles)
		require.Equal(t, "user-1", claims.Subject)
		require.Equal(t, "jdoe", claims.Name)
		require.True(t, exp.Equal(claims.ExpiresAt))
	})

	t.Run("role array", func(t *testing.T) {
		raw := tokenfake.MintClaims(jwtlib.MapClaims{
			config.DefaultRoleClaim: []any{"Student", "Auditor"},
			"exp":                   exp.Unix(),
		})
		claims, err := token.Decode(raw, config.DefaultRoleClaim)
		require.NoError(t, err)
		require.Equal(t, []string{"Student", "Auditor"}, claims.Roles)
	})

	t.Run("fallback role claim", func(t *testing.T) {
		raw := tokenfake.MintClaims(jwtlib.MapClaims{"role": "student", "exp": exp.Unix()})
		claims, err := token.Decode(raw, config.DefaultRoleClaim)
		require.NoError(t, err)
		require.Equal(t, []string{"student"}, claims.Roles)
	})

	t.Run("expired tokens still decode", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		claims, err := token.Decode(tokenfake.Mint("teacher", past), config.DefaultRoleClaim)
		require.NoError(t, err)
		require.True(t, claims.ExpiresAt.Before(time.Now()))
	})

	t.Run("missing role", func(t *testing.T) {
		raw := tokenfake.MintClaims(jwtlib.MapClaims{"exp": exp.Unix()})
		_, err := token.Decode(raw, config.DefaultRoleClaim)
		require.ErrorIs(t, err, token.ErrMissingClaim)
	})

	t.Run("missing exp", func(t *testing.T) {
		raw := tokenfake.MintClaims(jwtlib.MapClaims{config.DefaultRoleClaim: "teacher"})
		_, err := token.Decode(raw, config.DefaultRoleClaim)
		require.ErrorIs(t, err, token.ErrMissingClaim)
	})

	t.Run("exp of the wrong type", func(t *testing.T) {
		raw := tokenfake.MintClaims(jwtlib.MapClaims{config.DefaultRoleClaim: "teacher", "exp": "tomorrow"})
		_, err := token.Decode(raw, config.DefaultRoleClaim)
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})

	t.Run("not a jwt", func(t *testing.T) {
		_, err := token.Decode("not-a-jwt", config.DefaultRoleClaim)
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})

	t.Run("garbage payload", func(t *testing.T) {
		_, err := token.Decode("eyJhbGciOiJIUzI1NiJ9.%%%.sig", config.DefaultRoleClaim)
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})
}
