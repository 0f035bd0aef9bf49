package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-key-for-unit-tests"
	testUserID  = "00000000-0000-0000-0000-000000000001"
	testActorID = "00000000-0000-0000-0000-000000000002"
	testIssuer  = "orangecat-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, testActorID, "user", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, actorID, role, err := Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testActorID, actorID)
	assert.Equal(t, "user", role)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	// Expiración -1 minuto: ya expirado al parsear.
	tok, err := Generate(testSecret, testUserID, testActorID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, testActorID, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestGenerate_SecretVacio_RetornaError(t *testing.T) {
	_, err := Generate("", testUserID, testActorID, "user", testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_TokenMalformado_RetornaError(t *testing.T) {
	_, _, _, err := Parse(testSecret, "token.invalido.aqui")
	assert.Error(t, err)
}
