package handler

import (
	"net/http"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

// readUploadedTable parses the multipart "file" field as a csv or xlsx table.
func readUploadedTable(c *gin.Context, maxSize int64) (*service.Table, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "Please upload a .csv or .xlsx file in the \"file\" field")
		return nil, false
	}
	defer file.Close()

	table, err := service.ReadTable(file, header.Filename)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return table, true
}

// writeImportResult replies 200 with the result, or 400 with the result attached when no row
// was valid.
func writeImportResult(c *gin.Context, result *service.ImportResult, err error) {
	if err != nil {
		if result != nil {
			c.JSON(http.StatusBadRequest, Response{Code: 40000, Message: err.Error(), Data: result})
			return
		}
		HandleError(c, err)
		return
	}
	Success(c, result)
}
