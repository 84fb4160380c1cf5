package handler

import (
	"mime"
	"net/http"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

// LedgerHandler serves project level deviations and client files.
type LedgerHandler struct {
	svc       *service.LedgerService
	maxUpload int64
}

func NewLedgerHandler(svc *service.LedgerService, maxUpload int64) *LedgerHandler {
	return &LedgerHandler{svc: svc, maxUpload: maxUpload}
}

// ListGeneralDeviations GET /projects/:id/general-deviations
func (h *LedgerHandler) ListGeneralDeviations(c *gin.Context) {
	items, err := h.svc.ListGeneralDeviations(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, list(items, len(items)))
}

// AddGeneralDeviation POST /projects/:id/general-deviations. Author defaults to the caller.
func (h *LedgerHandler) AddGeneralDeviation(c *gin.Context) {
	var req service.GeneralDeviationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Author == "" {
		req.Author = GetUserName(c)
	}

	project, err := h.svc.AddGeneralDeviation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, project)
}

// ListFiles GET /projects/:id/files
func (h *LedgerHandler) ListFiles(c *gin.Context) {
	items, err := h.svc.ListUploadedFiles(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, list(items, len(items)))
}

// UploadFiles POST /projects/:id/files (multipart "files" or "file")
func (h *LedgerHandler) UploadFiles(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "Cannot parse upload: "+err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		BadRequest(c, "No file uploaded")
		return
	}

	uploadedBy := c.PostForm("uploaded_by")
	if uploadedBy == "" {
		uploadedBy = GetUserName(c)
	}

	projectID := c.Param("id")
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			InternalError(c, "read upload: "+err.Error())
			return
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		_, err = h.svc.AddUploadedFile(c.Request.Context(), projectID, service.UploadInput{
			Name:        fh.Filename,
			UploadedBy:  uploadedBy,
			Size:        fh.Size,
			ContentType: contentType,
		}, src)
		src.Close()
		if err != nil {
			HandleError(c, err)
			return
		}
	}

	items, err := h.svc.ListUploadedFiles(c.Request.Context(), projectID)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, list(items, len(items)))
}

// DownloadFile GET /projects/:id/files/:fileId/download
func (h *LedgerHandler) DownloadFile(c *gin.Context) {
	file, rc, err := h.svc.OpenUploadedFile(c.Request.Context(), c.Param("id"), c.Param("fileId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	defer rc.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, file.Size, contentType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}),
	})
}
