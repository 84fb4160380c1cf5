package handler

import (
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	svc       *service.CatalogService
	maxUpload int64
}

func NewProductHandler(svc *service.CatalogService, maxUpload int64) *ProductHandler {
	return &ProductHandler{svc: svc, maxUpload: maxUpload}
}

// List GET /products?q=
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, list(products, len(products)))
}

// Get GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, product)
}

// Create POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req entity.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, product)
}

// BulkCreate POST /products/bulk
func (h *ProductHandler) BulkCreate(c *gin.Context) {
	var req []entity.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	products, err := h.svc.BulkCreate(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, list(products, len(products)))
}

// Update PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req entity.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, product)
}

// Delete DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Import POST /products/import (multipart "file", .csv or .xlsx)
func (h *ProductHandler) Import(c *gin.Context) {
	table, ok := readUploadedTable(c, h.maxUpload)
	if !ok {
		return
	}
	result, err := h.svc.Import(c.Request.Context(), table)
	writeImportResult(c, result, err)
}

// Accessories GET /accessories
func (h *ProductHandler) Accessories(c *gin.Context) {
	items := service.Accessories()
	Success(c, list(items, len(items)))
}
