// Package handler exposes the offer services over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/middleware"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/sse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups every handler.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Product   *ProductHandler
	Client    *ClientHandler
	TestTool  *TestToolHandler
	Project   *ProjectHandler
	Revision  *RevisionHandler
	Ledger    *LedgerHandler
	SparePart *SparePartHandler
	Export    *ExportHandler
	SSE       *SSEHandler
}

// Options tune request handling.
type Options struct {
	MaxUploadSize int64
}

func NewHandlers(svc *service.Services, hub *sse.Hub, opts Options, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = 32 << 20
	}
	return &Handlers{
		Auth:      NewAuthHandler(svc.Auth),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Product:   NewProductHandler(svc.Catalog, opts.MaxUploadSize),
		Client:    NewClientHandler(svc.Client, opts.MaxUploadSize),
		TestTool:  NewTestToolHandler(svc.TestTool, opts.MaxUploadSize),
		Project:   NewProjectHandler(svc.Project),
		Revision:  NewRevisionHandler(svc.Revision),
		Ledger:    NewLedgerHandler(svc.Ledger, opts.MaxUploadSize),
		SparePart: NewSparePartHandler(svc.SparePart),
		Export:    NewExportHandler(svc.Export),
		SSE:       NewSSEHandler(hub, logger),
	}
}

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps collections.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope. The HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps service errors onto the envelope.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrStorage):
		c.Error(err)
		InternalError(c, "storage failure")
	default:
		c.Error(err)
		InternalError(c, err.Error())
	}
}

// GetUserID returns the id of the authenticated user.
func GetUserID(c *gin.Context) string {
	return c.GetString(middleware.KeyUserID)
}

// GetUserName returns the display name of the authenticated user.
func GetUserName(c *gin.Context) string {
	return c.GetString(middleware.KeyUserName)
}

func list(items interface{}, total int) ListResponse {
	return ListResponse{Items: items, Total: total}
}
