package httpapi

import (
	"expvar"
	"net/http"

	httpopenapi "github.com/fairyhunter13/salon-management-service/internal/http/openapi"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()

	// Customer surface.
	mux.HandleFunc("POST /api/customers/appointments", app.createAppointmentHandler)
	mux.HandleFunc("GET /api/customers/appointments", app.myAppointmentsHandler)
	mux.HandleFunc("POST /api/customers/appointments/{id}/cancel", app.cancelAppointmentHandler)
	mux.HandleFunc("PUT /api/customers/appointments/{id}", app.updateAppointmentHandler)
	mux.HandleFunc("POST /api/customers/appointments/{id}/review", app.reviewAppointmentHandler)
	mux.HandleFunc("GET /api/customers/products", app.browseProductsHandler)
	mux.HandleFunc("POST /api/customers/orders", app.createOrderHandler)
	mux.HandleFunc("GET /api/customers/orders", app.myOrdersHandler)
	mux.HandleFunc("GET /api/customers/orders/{id}", app.getOrderHandler)
	mux.HandleFunc("POST /api/customers/orders/{id}/cancel", app.cancelOrderHandler)

	// Staff surface.
	mux.HandleFunc("POST /api/staff/shifts", app.registerShiftHandler)
	mux.HandleFunc("GET /api/staff/shifts", app.myShiftsHandler)
	mux.HandleFunc("POST /api/staff/shifts/{id}/check-in", app.checkInHandler)
	mux.HandleFunc("POST /api/staff/shifts/{id}/check-out", app.checkOutHandler)
	mux.HandleFunc("GET /api/staff/shifts/{id}/attendance", app.shiftAttendanceHandler)
	mux.HandleFunc("GET /api/staff/appointments", app.staffAppointmentsHandler)
	mux.HandleFunc("PATCH /api/staff/appointments/{id}", app.appointmentStatusHandler)
	mux.HandleFunc("GET /api/staff/customers/{id}/history", app.customerHistoryHandler)

	// Inventory surface.
	mux.HandleFunc("POST /api/inventory/products", app.addProductHandler)
	mux.HandleFunc("PUT /api/inventory/products/{id}", app.updateProductHandler)
	mux.HandleFunc("DELETE /api/inventory/products/{id}", app.deleteProductHandler)
	mux.HandleFunc("GET /api/inventory/orders", app.listOrdersHandler)
	mux.HandleFunc("PUT /api/inventory/orders/{id}", app.orderStatusHandler)
	mux.HandleFunc("GET /api/inventory/statistics", app.statisticsHandler)
	mux.HandleFunc("POST /api/inventory/suppliers", app.addSupplierHandler)
	mux.HandleFunc("GET /api/inventory/suppliers", app.listSuppliersHandler)
	mux.HandleFunc("POST /api/inventory/import-orders", app.addImportOrderHandler)
	mux.HandleFunc("GET /api/inventory/import-orders", app.listImportOrdersHandler)

	mux.HandleFunc("GET /healthz", app.healthHandler)
	mux.HandleFunc("GET /debug/metrics", app.metricsHandler)
	mux.Handle("GET /debug/vars", expvar.Handler())
	mux.HandleFunc("GET /openapi.yaml", app.openapiHandler)
	mux.HandleFunc("GET /docs", app.docsHandler)

	return WithRequestID(WithLogging(mux))
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
