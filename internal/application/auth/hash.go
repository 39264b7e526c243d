package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sal y secreto fijos heredados de la base de datos existente. No cambiar:
// los hashes almacenados dejarían de validar.
const (
	legacySalt   = "panaderia-salt-2024-completo"
	legacySecret = "panaderia-mrp-2024-completo-seguro"
)

// HashPassword calcula el hash legado: SHA-256 de password+sal+secreto en
// hex minúsculas. Todos los usuarios, nuevos incluidos, usan este esquema
// para mantener compatibilidad con las credenciales ya almacenadas.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + legacySalt + legacySecret))
	return hex.EncodeToString(sum[:])
}
