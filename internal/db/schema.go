package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('admin', 'member')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS storage_areas (
    id                TEXT PRIMARY KEY,
    name              TEXT NOT NULL,
    type              TEXT NOT NULL CHECK (type IN ('fridge', 'freezer', 'pantry', 'cabinet', 'custom')),
    custom_type_label TEXT,
    icon              TEXT,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS location_zones (
    id              TEXT PRIMARY KEY,
    storage_area_id TEXT NOT NULL REFERENCES storage_areas(id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    position        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS grocery_stores (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    icon       TEXT,
    color      TEXT,
    position   INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    barcode          TEXT,
    quantity         INTEGER NOT NULL CHECK (quantity >= 0),
    unit             TEXT NOT NULL DEFAULT '',
    expiration_date  TEXT,
    storage_area_id  TEXT NOT NULL REFERENCES storage_areas(id) ON DELETE CASCADE,
    location_zone_id TEXT,
    default_store_id TEXT,
    aisle            TEXT,
    notes            TEXT,
    category         TEXT,
    approximate_cost REAL,
    photo            BLOB,
    photo_mime       TEXT,
    gone_at          DATETIME,
    disposal_reason  TEXT CHECK (disposal_reason IS NULL OR disposal_reason IN ('used', 'expired', 'thrown_away', 'unknown')),
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_active ON items(storage_area_id) WHERE gone_at IS NULL;

CREATE TABLE IF NOT EXISTS recipe_groups (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    is_expanded INTEGER NOT NULL DEFAULT 1,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS shopping_list (
    id                    TEXT PRIMARY KEY,
    name                  TEXT NOT NULL,
    quantity              INTEGER NOT NULL CHECK (quantity > 0),
    unit                  TEXT NOT NULL DEFAULT '',
    store_id              TEXT,
    barcode               TEXT,
    aisle                 TEXT,
    linked_item_id        TEXT,
    last_storage_area_id  TEXT,
    last_location_zone_id TEXT,
    is_completed          INTEGER NOT NULL DEFAULT 0,
    recipe_group_id       TEXT REFERENCES recipe_groups(id) ON DELETE CASCADE,
    created_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_shopping_linked_item
    ON shopping_list(linked_item_id) WHERE linked_item_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS barcode_catalog (
    barcode          TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    default_unit     TEXT NOT NULL DEFAULT '',
    default_quantity INTEGER NOT NULL DEFAULT 1,
    category         TEXT,
    aisle            TEXT,
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS item_moves (
    id           INTEGER PRIMARY KEY,
    item_id      TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    from_area_id TEXT NOT NULL,
    to_area_id   TEXT NOT NULL,
    from_zone_id TEXT,
    to_zone_id   TEXT,
    moved_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    moved_by     INTEGER REFERENCES users(id)
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
