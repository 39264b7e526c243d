package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Vectores calculados contra la base de datos existente. Si este test
// falla, ningún usuario ya registrado podría iniciar sesión.
func TestHashPasswordKnownVectors(t *testing.T) {
	assert.Equal(t,
		"cdfb7d2852fc553ce2e4c4af161f9230c1084f2629bcca3a2a103d10c3aa58f7",
		HashPassword("Admin2024!"))
	assert.Equal(t,
		"dd9a5d105b2efbd933b8491fb5d5a036801511c32c3dc3f45fd0a92df0a2889e",
		HashPassword("hogaza"))
}

func TestHashPasswordDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("abc"), HashPassword("abc"))
	assert.NotEqual(t, HashPassword("abc"), HashPassword("abd"))
	assert.Len(t, HashPassword(""), 64)
}
