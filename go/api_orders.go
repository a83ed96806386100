package dentallabserver

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/interchange"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
	"github.com/Apurer/dentallab-tracker/internal/platform/i18n"
)

// OrdersAPI wires HTTP transport with the order store and file interchange.
type OrdersAPI struct {
	service     ports.Service
	files       *interchange.Service
	preferences *application.Preferences
}

// NewOrdersAPI creates an OrdersAPI. preferences may be nil, in which case
// import messages are rendered in English.
func NewOrdersAPI(service ports.Service, files *interchange.Service, preferences *application.Preferences) OrdersAPI {
	return OrdersAPI{service: service, files: files, preferences: preferences}
}

// Get /v1/orders
// Lists orders filtered by q, status and clinic, sorted by sort
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	var params orderhttpmapper.QueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	query, err := orderhttpmapper.ToQuery(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	orders, err := api.service.Query(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainList(orders))
}

// Post /v1/orders
// Creates an order at the top of the list
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.OrderInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	order, err := api.service.Create(c.Request.Context(), orderhttpmapper.ToFields(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", "/v1/orders/"+order.ID)
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomain(order))
}

// Delete /v1/orders
// Removes every order
func (api *OrdersAPI) ClearOrders(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/orders/:orderId
// Finds an order by id
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, err := api.service.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomain(order))
}

// Put /v1/orders/:orderId
// Replaces the editable fields of an order
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	var payload orderhttpmapper.OrderInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	order, err := api.service.Update(c.Request.Context(), c.Param("orderId"), orderhttpmapper.ToFields(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomain(order))
}

// Delete /v1/orders/:orderId
// Deletes an order; unknown ids succeed
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("orderId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Patch /v1/orders/:orderId/status
// Moves an order to another status
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	var payload orderhttpmapper.StatusInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	order, err := api.service.SetStatus(c.Request.Context(), c.Param("orderId"), domain.Status(payload.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomain(order))
}

// Post /v1/sample
// Replaces the collection with demo orders
func (api *OrdersAPI) LoadSample(c *gin.Context) {
	ctx := c.Request.Context()
	if err := api.service.LoadSample(ctx); err != nil {
		respondServiceError(c, err)
		return
	}
	orders, err := api.service.List(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainList(orders))
}

// Get /v1/summary
// Counts orders per status
func (api *OrdersAPI) GetSummary(c *gin.Context) {
	summary, err := api.service.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromSummary(summary))
}

// Get /v1/clinics
// Lists distinct clinic names
func (api *OrdersAPI) ListClinics(c *gin.Context) {
	clinics, err := api.service.Clinics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clinics)
}

// Get /v1/export
// Downloads the collection as csv or xlsx
func (api *OrdersAPI) ExportOrders(c *gin.Context) {
	format, err := interchange.ParseFormat(c.Query("format"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	file, err := api.files.Export(c.Request.Context(), format)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Post /v1/import
// Imports a csv file sent as the raw body or as the multipart field "file"
func (api *OrdersAPI) ImportOrders(c *gin.Context) {
	body, closeBody, err := importBody(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	defer closeBody()
	report, err := api.files.ImportCSV(c.Request.Context(), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromImportReport(report, api.importedMessage(c.Request.Context(), report.Imported)))
}

// Post /v1/archive
// Stores an export in the archive
func (api *OrdersAPI) ArchiveExport(c *gin.Context) {
	format, err := interchange.ParseFormat(c.Query("format"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	object, err := api.files.ArchiveExport(c.Request.Context(), format)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, object)
}

// Post /v1/archive/import
// Imports an archived csv export by key
func (api *OrdersAPI) ImportArchived(c *gin.Context) {
	var payload orderhttpmapper.ArchiveImportRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	report, err := api.files.ImportArchived(c.Request.Context(), payload.Key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromImportReport(report, api.importedMessage(c.Request.Context(), report.Imported)))
}

func (api *OrdersAPI) importedMessage(ctx context.Context, n int) string {
	lang := i18n.English
	if api.preferences != nil {
		if stored, err := api.preferences.Language(ctx); err == nil {
			lang = stored
		}
	}
	return i18n.New(lang).T(i18n.ImportedRows, n)
}

func importBody(c *gin.Context) (io.Reader, func(), error) {
	if c.ContentType() != "multipart/form-data" {
		return c.Request.Body, func() {}, nil
	}
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
