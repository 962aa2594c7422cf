package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

const appSettingsKey = "app_settings"

// GetAppSettings returns the stored application settings, or the defaults when
// nothing has been saved yet.
func GetAppSettings(ctx context.Context, db *sql.DB) (model.AppSettings, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, appSettingsKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.DefaultAppSettings(), nil
	}
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("getting app settings: %w", err)
	}

	var settings model.AppSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.AppSettings{}, fmt.Errorf("decoding app settings: %w", err)
	}
	return settings, nil
}

// SaveAppSettings persists the application settings.
func SaveAppSettings(ctx context.Context, db *sql.DB, settings model.AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding app settings: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		appSettingsKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saving app settings: %w", err)
	}
	return nil
}

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}
