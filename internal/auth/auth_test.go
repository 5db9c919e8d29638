package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	secret := "my_super_secret_key_for_testing"

	tokenString, err := GenerateJWT("user_2abcDEF", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := VerifyJWT(tokenString, secret)
	require.NoError(t, err)
	require.NotNil(t, claims)
	require.Equal(t, "user_2abcDEF", claims.AccountID())
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	_, err = VerifyJWT(tokenString, "wrong_secret")
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestVerifyJWT_Expired(t *testing.T) {
	secret := "secret"

	claimsExpired := &AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc_expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
		},
	}
	tokenExpired := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsExpired)
	tokenStringExpired, err := tokenExpired.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenStringExpired, secret)
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyJWT_MissingSubject(t *testing.T) {
	secret := "secret"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString, secret)
	require.ErrorIs(t, err, ErrMissingSubject)
}

func TestVerifyJWT_Issuer(t *testing.T) {
	secret := "secret"
	tokenString, err := GenerateJWT("acc_1", secret, time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString, secret, jwt.WithIssuer("linkbio"))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString, secret, jwt.WithIssuer("someone-else"))
	require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
