// seed crea el esquema de VitaStock, las categorías por defecto y una cuenta
// administradora inicial. Es idempotente: usa IF NOT EXISTS y ON CONFLICT.
//
// Uso: go run ./cmd/seed
// Variables: las mismas de la API (DATABASE_URL o DB_*), más opcionalmente
// SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitastock/vitastock-api/internal/infrastructure/postgres"
	"github.com/vitastock/vitastock-api/pkg/config"
	"github.com/vitastock/vitastock-api/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'operador',
	status        TEXT NOT NULL DEFAULT 'active',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS locations (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	location_type TEXT NOT NULL DEFAULT 'OTHER',
	notes         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	category_id         TEXT NOT NULL REFERENCES categories(id),
	unit                TEXT NOT NULL DEFAULT 'unit',
	min_stock           BIGINT NOT NULL DEFAULT 1,
	default_location_id TEXT REFERENCES locations(id),
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (name, category_id)
);

CREATE TABLE IF NOT EXISTS batches (
	id          TEXT PRIMARY KEY,
	product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	lot_code    TEXT NOT NULL,
	expiry_date DATE NOT NULL,
	quantity    BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	location_id TEXT NOT NULL REFERENCES locations(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (product_id, lot_code, location_id)
);

CREATE TABLE IF NOT EXISTS movements (
	id                      TEXT PRIMARY KEY,
	batch_id                TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
	movement_type           TEXT NOT NULL CHECK (movement_type IN ('IN','OUT','WASTE','ADJUST','TRANSFER')),
	quantity                BIGINT NOT NULL CHECK (quantity >= 1),
	destination_location_id TEXT REFERENCES locations(id),
	note                    TEXT NOT NULL DEFAULT '',
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	created_by              TEXT REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_batches_product  ON batches(product_id);
CREATE INDEX IF NOT EXISTS idx_batches_expiry   ON batches(expiry_date);
CREATE INDEX IF NOT EXISTS idx_movements_batch  ON movements(batch_id);
CREATE INDEX IF NOT EXISTS idx_movements_created ON movements(created_at DESC);
`

// Categorías por defecto de una despensa doméstica.
var defaultCategories = []string{
	"Lácteos",
	"Carnes",
	"Frutas y verduras",
	"Congelados",
	"Despensa",
	"Bebidas",
	"Panadería",
	"Limpieza",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema creado")

	for _, name := range defaultCategories {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			uuid.New().String(), name, time.Now())
		if err != nil {
			log.Fatal().Err(err).Str("category", name).Msg("insertar categoría")
		}
	}
	log.Info().Int("total", len(defaultCategories)).Msg("categorías por defecto")

	email := envOr("SEED_ADMIN_EMAIL", "admin@vitastock.local")
	password := envOr("SEED_ADMIN_PASSWORD", "cambiame-ya")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, 'Administrador', 'admin', 'active', now(), now())
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), email, string(hash))
	if err != nil {
		log.Fatal().Err(err).Msg("insertar admin")
	}
	log.Info().Str("email", email).Msg("cuenta admin lista")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
