// Package registry casos de uso de los registros maestros: productos,
// materias primas, proveedores y clientes.
package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefijos de código por registro.
const (
	PrefixProduct     = "PROD"
	PrefixRawMaterial = "MP"
	PrefixSupplier    = "PROV"
	PrefixCustomer    = "CLI"
)

// GenerateCode produce un código {PREFIX}-{yyyymmdd}-{XXXXXX} con sufijo
// hexadecimal aleatorio en mayúsculas. La unicidad real la garantiza el
// constraint UNIQUE de la tabla; ante la improbable colisión la creación
// falla con DUPLICADO y el cliente reintenta.
func GenerateCode(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}
