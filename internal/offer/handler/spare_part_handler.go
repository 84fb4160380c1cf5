package handler

import (
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

type SparePartHandler struct {
	svc *service.SparePartService
}

func NewSparePartHandler(svc *service.SparePartService) *SparePartHandler {
	return &SparePartHandler{svc: svc}
}

type sparePartRequest struct {
	Author  string `json:"author"`
	Content string `json:"content" binding:"required"`
}

// List GET /projects/:id/spare-parts/:type?q=
func (h *SparePartHandler) List(c *gin.Context) {
	notes, err := h.svc.List(c.Request.Context(), c.Param("id"), c.Param("type"), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, list(notes, len(notes)))
}

// Add POST /projects/:id/spare-parts/:type
func (h *SparePartHandler) Add(c *gin.Context) {
	var req sparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Author == "" {
		req.Author = GetUserName(c)
	}

	note, err := h.svc.Add(c.Request.Context(), c.Param("id"), c.Param("type"), req.Author, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, note)
}

// Edit PUT /projects/:id/spare-parts/:type/:noteId
func (h *SparePartHandler) Edit(c *gin.Context) {
	var req sparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	note, err := h.svc.Edit(c.Request.Context(), c.Param("id"), c.Param("type"), c.Param("noteId"), req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, note)
}

// Delete DELETE /projects/:id/spare-parts/:type/:noteId
func (h *SparePartHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.Param("type"), c.Param("noteId")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
