package handler

import (
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

type TestToolHandler struct {
	svc       *service.TestToolService
	maxUpload int64
}

func NewTestToolHandler(svc *service.TestToolService, maxUpload int64) *TestToolHandler {
	return &TestToolHandler{svc: svc, maxUpload: maxUpload}
}

// List GET /test-tools?q=
func (h *TestToolHandler) List(c *gin.Context) {
	tools, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, list(tools, len(tools)))
}

// Get GET /test-tools/:id
func (h *TestToolHandler) Get(c *gin.Context) {
	tool, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, tool)
}

// Create POST /test-tools
func (h *TestToolHandler) Create(c *gin.Context) {
	var req entity.TestTool
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tool, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, tool)
}

// Update PUT /test-tools/:id
func (h *TestToolHandler) Update(c *gin.Context) {
	var req entity.TestTool
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tool, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, tool)
}

// Delete DELETE /test-tools/:id
func (h *TestToolHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Import POST /test-tools/import
func (h *TestToolHandler) Import(c *gin.Context) {
	table, ok := readUploadedTable(c, h.maxUpload)
	if !ok {
		return
	}
	result, err := h.svc.Import(c.Request.Context(), table)
	writeImportResult(c, result, err)
}
