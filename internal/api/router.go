package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, sync *notify.Synchronizer, platform notify.Platform) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db, Sync: sync}
	areasHandler := &AreasHandler{DB: db, Sync: sync}
	shoppingHandler := &ShoppingHandler{DB: db, Sync: sync}
	storesHandler := &StoresHandler{DB: db}
	barcodeHandler := &BarcodeHandler{DB: db}
	settingsHandler := &SettingsHandler{DB: db, Sync: sync}
	analyticsHandler := &AnalyticsHandler{DB: db}
	backupHandler := &BackupHandler{DB: db, Sync: sync}
	notificationsHandler := &NotificationsHandler{Platform: platform}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Inventory items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/items/expiring", authMW(http.HandlerFunc(itemsHandler.ListExpiring)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/items/{id}/decrement", authMW(http.HandlerFunc(itemsHandler.Decrement)))
	mux.Handle("POST /api/items/{id}/gone", authMW(http.HandlerFunc(itemsHandler.MarkGone)))
	mux.Handle("POST /api/items/{id}/move", authMW(http.HandlerFunc(itemsHandler.Move)))
	mux.Handle("GET /api/items/{id}/history", authMW(http.HandlerFunc(itemsHandler.GetHistory)))
	mux.Handle("PUT /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.UploadPhoto)))
	mux.Handle("GET /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.GetPhoto)))

	// Storage areas and zones.
	mux.Handle("GET /api/areas", authMW(http.HandlerFunc(areasHandler.List)))
	mux.Handle("POST /api/areas", authMW(http.HandlerFunc(areasHandler.Create)))
	mux.Handle("GET /api/areas/{id}", authMW(http.HandlerFunc(areasHandler.Get)))
	mux.Handle("PUT /api/areas/{id}", authMW(http.HandlerFunc(areasHandler.Update)))
	mux.Handle("DELETE /api/areas/{id}", authMW(http.HandlerFunc(areasHandler.Delete)))
	mux.Handle("POST /api/areas/{id}/zones", authMW(http.HandlerFunc(areasHandler.CreateZone)))
	mux.Handle("PUT /api/areas/{id}/zones/{zone}", authMW(http.HandlerFunc(areasHandler.UpdateZone)))
	mux.Handle("DELETE /api/areas/{id}/zones/{zone}", authMW(http.HandlerFunc(areasHandler.DeleteZone)))

	// Shopping list and recipe groups.
	mux.Handle("GET /api/shopping", authMW(http.HandlerFunc(shoppingHandler.List)))
	mux.Handle("POST /api/shopping", authMW(http.HandlerFunc(shoppingHandler.Create)))
	mux.Handle("POST /api/shopping/clear-completed", authMW(http.HandlerFunc(shoppingHandler.ClearCompleted)))
	mux.Handle("GET /api/shopping/groups", authMW(http.HandlerFunc(shoppingHandler.ListGroups)))
	mux.Handle("POST /api/shopping/groups", authMW(http.HandlerFunc(shoppingHandler.CreateGroup)))
	mux.Handle("POST /api/shopping/groups/{id}/toggle", authMW(http.HandlerFunc(shoppingHandler.ToggleGroup)))
	mux.Handle("DELETE /api/shopping/groups/{id}", authMW(http.HandlerFunc(shoppingHandler.DeleteGroup)))
	mux.Handle("PUT /api/shopping/{id}", authMW(http.HandlerFunc(shoppingHandler.Update)))
	mux.Handle("DELETE /api/shopping/{id}", authMW(http.HandlerFunc(shoppingHandler.Delete)))
	mux.Handle("POST /api/shopping/{id}/toggle", authMW(http.HandlerFunc(shoppingHandler.Toggle)))
	mux.Handle("POST /api/shopping/{id}/to-inventory", authMW(http.HandlerFunc(shoppingHandler.ToInventory)))

	// Grocery stores.
	mux.Handle("GET /api/stores", authMW(http.HandlerFunc(storesHandler.List)))
	mux.Handle("POST /api/stores", authMW(http.HandlerFunc(storesHandler.Create)))
	mux.Handle("GET /api/stores/{id}", authMW(http.HandlerFunc(storesHandler.Get)))
	mux.Handle("PUT /api/stores/{id}", authMW(http.HandlerFunc(storesHandler.Update)))
	mux.Handle("DELETE /api/stores/{id}", authMW(http.HandlerFunc(storesHandler.Delete)))

	// Barcode catalog.
	mux.Handle("GET /api/barcodes", authMW(http.HandlerFunc(barcodeHandler.List)))
	mux.Handle("GET /api/barcodes/{code}", authMW(http.HandlerFunc(barcodeHandler.Get)))
	mux.Handle("PUT /api/barcodes/{code}", authMW(http.HandlerFunc(barcodeHandler.Upsert)))

	// Settings.
	mux.Handle("GET /api/settings", authMW(http.HandlerFunc(settingsHandler.Get)))
	mux.Handle("PUT /api/settings", authMW(http.HandlerFunc(settingsHandler.Update)))

	// Analytics.
	mux.Handle("GET /api/analytics", authMW(http.HandlerFunc(analyticsHandler.Report)))
	mux.Handle("GET /api/analytics/history", authMW(http.HandlerFunc(analyticsHandler.History)))

	// Backup.
	mux.Handle("GET /api/backup", authMW(http.HandlerFunc(backupHandler.Export)))
	mux.Handle("POST /api/backup", authMW(http.HandlerFunc(backupHandler.Import)))

	// Scheduled notifications.
	mux.Handle("GET /api/notifications", authMW(http.HandlerFunc(notificationsHandler.List)))

	return mux
}
