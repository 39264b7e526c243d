// Package cache implementa una capa de caché de lectura sobre Redis con
// invalidación por versión y por dominio. Cada dominio (productos, ventas,
// reportes, ...) lleva su propio contador de versión; invalidar un dominio
// es incrementar el contador, lo que deja huérfanas las claves viejas hasta
// que expire su TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dominios de caché. Un dominio por registro maestro y por tipo de
// documento, más uno para los reportes agregados.
const (
	DomainProducts    = "productos"
	DomainMaterials   = "materias_primas"
	DomainSuppliers   = "proveedores"
	DomainCustomers   = "clientes"
	DomainPurchases   = "compras"
	DomainSales       = "ventas"
	DomainProduction  = "produccion"
	DomainReports     = "reportes"
)

// Cache envuelve el cliente Redis. Un Cache con client nil es válido y se
// comporta como passthrough (cada lectura ejecuta el loader).
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New construye el helper de caché. ttl aplica a cada entrada.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func versionKey(domain string) string {
	return "cache:ver:" + domain
}

// Version devuelve la versión vigente del dominio, inicializándola en 1 si
// no existe.
func (c *Cache) Version(ctx context.Context, domain string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey(domain)).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, versionKey(domain), 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey compone la clave de caché con la versión vigente del dominio.
func (c *Cache) BuildKey(ctx context.Context, domain string, parts ...string) (string, error) {
	joined := strings.Join(append([]string{domain}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx, domain)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON devuelve el valor cacheado bajo key o lo carga con loader y lo
// guarda. dest recibe el valor en ambos casos.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if err != redis.Nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate incrementa la versión del dominio; las claves construidas con
// la versión anterior dejan de resolverse.
func (c *Cache) Invalidate(ctx context.Context, domain string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, versionKey(domain)).Err()
}
