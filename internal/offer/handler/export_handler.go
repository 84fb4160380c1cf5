package handler

import (
	"net/http"
	"strconv"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

// ExportHandler serves offer downloads.
type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func attachment(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")
}

// Offer GET /projects/:id/revisions/:rev/offer
func (h *ExportHandler) Offer(c *gin.Context) {
	f, filename, err := h.svc.OfferWorkbook(c.Request.Context(), c.Param("id"), c.Param("rev"))
	if err != nil {
		HandleError(c, err)
		return
	}
	defer f.Close()

	attachment(c, service.ContentTypeXLSX, filename)
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// Export GET /projects/:id/revisions/:rev/export?format=&details=&file_name=
func (h *ExportHandler) Export(c *gin.Context) {
	details, _ := strconv.ParseBool(c.DefaultQuery("details", "false"))
	file, err := h.svc.Export(c.Request.Context(), c.Param("id"), c.Param("rev"), service.ExportOptions{
		Format:         c.DefaultQuery("format", service.FormatXLSX),
		IncludeDetails: details,
		FileName:       c.Query("file_name"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	h.send(c, file)
}

// CSV GET /projects/:id/revisions/:rev/csv
func (h *ExportHandler) CSV(c *gin.Context) {
	file, err := h.svc.RevisionCSV(c.Request.Context(), c.Param("id"), c.Param("rev"))
	if err != nil {
		HandleError(c, err)
		return
	}
	h.send(c, file)
}

func (h *ExportHandler) send(c *gin.Context, file *service.ExportFile) {
	attachment(c, file.ContentType, file.Name)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
