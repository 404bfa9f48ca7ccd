package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Tienda-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "tienda-api-test"
)

// Generar y parsear un access token: los claims deben sobrevivir el viaje.
func TestJWT_GenerateYParse_Access(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "user", testIssuer, pkgjwt.TypeAccess, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, pkgjwt.TypeAccess, claims.TokenType)
	assert.Equal(t, testIssuer, claims.Issuer)
}

// Un token firmado con otro secreto debe rechazarse como inválido.
func TestJWT_Parse_OtroSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, "user", testIssuer, pkgjwt.TypeRefresh, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

// Un token vencido debe reportarse como expirado, no como inválido.
func TestJWT_Parse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "user", testIssuer, pkgjwt.TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

// Un access token no sirve donde se espera un refresh.
func TestJWT_ParseType_TipoIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "user", testIssuer, pkgjwt.TypeAccess, 15*time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.ParseType(testSecret, tok, pkgjwt.TypeRefresh)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)

	claims, err := pkgjwt.ParseType(testSecret, tok, pkgjwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
}

// Un token malformado o tipo desconocido en Generate.
func TestJWT_Malformado(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)

	_, err = pkgjwt.Generate(testSecret, testUserID, "user", testIssuer, "session", time.Hour)
	assert.Error(t, err)
}
