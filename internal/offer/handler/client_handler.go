package handler

import (
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	svc       *service.ClientService
	maxUpload int64
}

func NewClientHandler(svc *service.ClientService, maxUpload int64) *ClientHandler {
	return &ClientHandler{svc: svc, maxUpload: maxUpload}
}

// List GET /clients?q=
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, list(clients, len(clients)))
}

// Get GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, client)
}

// Create POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req entity.Client
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, client)
}

// Update PUT /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	var req entity.Client
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, client)
}

// Delete DELETE /clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Import POST /clients/import
func (h *ClientHandler) Import(c *gin.Context) {
	table, ok := readUploadedTable(c, h.maxUpload)
	if !ok {
		return
	}
	result, err := h.svc.Import(c.Request.Context(), table)
	writeImportResult(c, result, err)
}
