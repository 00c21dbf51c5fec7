package jwt_test

import (
	"testing"

	"github.com/jhoicas/Bizops-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	token, err := jwt.Generate("secret", "u1", "acme", "admin", "bizops", 5)
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse("secret", token, "bizops")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "acme", companyID)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaOEmisorIncorrecto(t *testing.T) {
	token, err := jwt.Generate("secret", "u1", "acme", "admin", "bizops", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)

	_, _, _, err = jwt.Parse("secret", token, "otro-emisor")
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secret", "u1", "acme", "admin", "bizops", -1)
	require.NoError(t, err)
	_, _, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u1", "acme", "admin", "bizops", 5)
	assert.Error(t, err)
}
