package dentallabserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers served by the router.
type ApiHandleFunctions struct {
	// Routes for the orders part of the API
	OrdersAPI OrdersAPI
	// Routes for the preferences part of the API
	PreferencesAPI PreferencesAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	registerValidators()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"ListOrders", http.MethodGet, "/v1/orders", handleFunctions.OrdersAPI.ListOrders},
		{"CreateOrder", http.MethodPost, "/v1/orders", handleFunctions.OrdersAPI.CreateOrder},
		{"ClearOrders", http.MethodDelete, "/v1/orders", handleFunctions.OrdersAPI.ClearOrders},
		{"GetOrder", http.MethodGet, "/v1/orders/:orderId", handleFunctions.OrdersAPI.GetOrder},
		{"UpdateOrder", http.MethodPut, "/v1/orders/:orderId", handleFunctions.OrdersAPI.UpdateOrder},
		{"DeleteOrder", http.MethodDelete, "/v1/orders/:orderId", handleFunctions.OrdersAPI.DeleteOrder},
		{"UpdateOrderStatus", http.MethodPatch, "/v1/orders/:orderId/status", handleFunctions.OrdersAPI.UpdateOrderStatus},
		{"LoadSample", http.MethodPost, "/v1/sample", handleFunctions.OrdersAPI.LoadSample},
		{"GetSummary", http.MethodGet, "/v1/summary", handleFunctions.OrdersAPI.GetSummary},
		{"ListClinics", http.MethodGet, "/v1/clinics", handleFunctions.OrdersAPI.ListClinics},
		{"ExportOrders", http.MethodGet, "/v1/export", handleFunctions.OrdersAPI.ExportOrders},
		{"ImportOrders", http.MethodPost, "/v1/import", handleFunctions.OrdersAPI.ImportOrders},
		{"ArchiveExport", http.MethodPost, "/v1/archive", handleFunctions.OrdersAPI.ArchiveExport},
		{"ImportArchived", http.MethodPost, "/v1/archive/import", handleFunctions.OrdersAPI.ImportArchived},
		{"GetLanguage", http.MethodGet, "/v1/preferences/language", handleFunctions.PreferencesAPI.GetLanguage},
		{"SetLanguage", http.MethodPut, "/v1/preferences/language", handleFunctions.PreferencesAPI.SetLanguage},
	}
}
