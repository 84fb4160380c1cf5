package handler

import (
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

// RevisionHandler serves revision and device edits.
type RevisionHandler struct {
	svc *service.RevisionService
}

func NewRevisionHandler(svc *service.RevisionService) *RevisionHandler {
	return &RevisionHandler{svc: svc}
}

type revisionResponse struct {
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name"`
	ProjectNo   string          `json:"project_no"`
	LastRev     string          `json:"last_rev"`
	RevNo       string          `json:"rev_no"`
	Devices     []entity.Device `json:"devices"`
}

type addDevicesRequest struct {
	Devices []entity.Device `json:"devices" binding:"required"`
}

type addProductsRequest struct {
	Products []service.ProductSelection `json:"products" binding:"required,dive"`
}

type deviationRequest struct {
	ClientRequest string `json:"client_request" binding:"required"`
	VendorReply   string `json:"vendor_reply"`
}

type accessoriesRequest struct {
	Accessories []service.AccessorySelection `json:"accessories" binding:"dive"`
}

type copyFromRequest struct {
	SourceProjectID string `json:"source_project_id" binding:"required"`
	SourceRevNo     string `json:"source_rev_no" binding:"required"`
}

// GetRevision GET /projects/:id/revisions/:rev
func (h *RevisionHandler) GetRevision(c *gin.Context) {
	p, rev, err := h.svc.GetRevision(c.Request.Context(), c.Param("id"), c.Param("rev"))
	if err != nil {
		HandleError(c, err)
		return
	}
	devices := rev.Devices
	if devices == nil {
		devices = []entity.Device{}
	}
	Success(c, revisionResponse{
		ProjectID:   p.ID,
		ProjectName: p.ProjectName,
		ProjectNo:   p.ProjectNo,
		LastRev:     p.LastRev,
		RevNo:       rev.RevNo,
		Devices:     devices,
	})
}

// AddDevices POST /projects/:id/revisions/:rev/devices
func (h *RevisionHandler) AddDevices(c *gin.Context) {
	var req addDevicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.AddDevicesToRevision(c.Request.Context(), c.Param("id"), c.Param("rev"), req.Devices)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, project)
}

// AddProducts POST /projects/:id/revisions/:rev/products
func (h *RevisionHandler) AddProducts(c *gin.Context) {
	var req addProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.AddProductsToRevision(c.Request.Context(), c.Param("id"), c.Param("rev"), req.Products)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, project)
}

// UpdateDevice PUT /projects/:id/revisions/:rev/devices/:deviceId
func (h *RevisionHandler) UpdateDevice(c *gin.Context) {
	var device entity.Device
	if err := c.ShouldBindJSON(&device); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	device.ID = c.Param("deviceId")

	project, err := h.svc.UpdateDeviceInRevision(c.Request.Context(), c.Param("id"), c.Param("rev"), device)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, project)
}

// AddDeviation POST /projects/:id/revisions/:rev/devices/:deviceId/deviations
func (h *RevisionHandler) AddDeviation(c *gin.Context) {
	var req deviationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.AddDeviceDeviation(c.Request.Context(),
		c.Param("id"), c.Param("rev"), c.Param("deviceId"), req.ClientRequest, req.VendorReply)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, project)
}

// RemoveDeviation DELETE /projects/:id/revisions/:rev/devices/:deviceId/deviations/:deviationId
func (h *RevisionHandler) RemoveDeviation(c *gin.Context) {
	project, err := h.svc.RemoveDeviceDeviation(c.Request.Context(),
		c.Param("id"), c.Param("rev"), c.Param("deviceId"), c.Param("deviationId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, project)
}

// SetAccessories PUT /projects/:id/revisions/:rev/devices/:deviceId/accessories
func (h *RevisionHandler) SetAccessories(c *gin.Context) {
	var req accessoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.SetDeviceAccessories(c.Request.Context(),
		c.Param("id"), c.Param("rev"), c.Param("deviceId"), req.Accessories)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, project)
}

// CopyFrom POST /projects/:id/revisions/:rev/copy-from
func (h *RevisionHandler) CopyFrom(c *gin.Context) {
	var req copyFromRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.CopyRevisionDevices(c.Request.Context(),
		c.Param("id"), c.Param("rev"), req.SourceProjectID, req.SourceRevNo)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, project)
}

// RevUp POST /projects/:id/rev-up
func (h *RevisionHandler) RevUp(c *gin.Context) {
	project, err := h.svc.RevUp(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, project)
}
