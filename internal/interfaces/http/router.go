package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC  *report.UseCase
	Sessions  *report.SessionStore
	JWTSecret string
	Roles     []string // roles con acceso; vacío = cualquier usuario autenticado
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole(deps.Roles...))

	// Catálogo
	catalog := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.ReportUC, deps.Sessions)
	catalog.Get("/products", catalogHandler.Products)
	catalog.Get("/categories", catalogHandler.Categories)
	catalog.Get("/warehouses", catalogHandler.Warehouses)
	catalog.Post("/reload", catalogHandler.Reload)

	// Selección
	sel := api.Group("/selection")
	selectionHandler := NewSelectionHandler(deps.ReportUC)
	sel.Get("/", selectionHandler.Get)
	sel.Put("/filter", selectionHandler.SetFilter)
	sel.Put("/categories", selectionHandler.SetCategories)
	sel.Post("/products", selectionHandler.AddProducts)
	sel.Delete("/products", selectionHandler.ClearProducts)
	sel.Post("/products/toggle-all", selectionHandler.ToggleAllProducts)
	sel.Post("/products/:id/toggle", selectionHandler.ToggleProduct)
	sel.Delete("/products/:id", selectionHandler.RemoveProduct)
	sel.Put("/warehouses", selectionHandler.SetWarehouses)
	sel.Post("/warehouses/toggle-all", selectionHandler.ToggleAllWarehouses)
	sel.Put("/movements", selectionHandler.SetMovements)
	sel.Post("/movements/toggle-all", selectionHandler.ToggleAllMovements)
	sel.Put("/dates", selectionHandler.SetDates)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/movement", reportHandler.CreateMovement)
	reports.Post("/as-of", reportHandler.CreateAsOf)
	reports.Get("/current", reportHandler.Current)
	reports.Get("/export", reportHandler.Export)
	reports.Delete("/", reportHandler.Reset)
}
