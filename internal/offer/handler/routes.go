package handler

import (
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/middleware"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api/v1. Everything except login requires a JWT.
func RegisterRoutes(r gin.IRouter, h *Handlers, jwtSecret string) {
	v1 := r.Group("/api/v1")

	v1.POST("/auth/login", h.Auth.Login)

	api := v1.Group("")
	api.Use(middleware.JWTAuth(jwtSecret))
	{
		api.GET("/auth/me", h.Auth.Me)
		api.GET("/dashboard", h.Dashboard.Summary)
		api.GET("/sse/events", h.SSE.Stream)

		api.GET("/accessories", h.Product.Accessories)

		products := api.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.POST("/bulk", h.Product.BulkCreate)
			products.POST("/import", h.Product.Import)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
		}

		clients := api.Group("/clients")
		{
			clients.GET("", h.Client.List)
			clients.POST("", h.Client.Create)
			clients.POST("/import", h.Client.Import)
			clients.GET("/:id", h.Client.Get)
			clients.PUT("/:id", h.Client.Update)
			clients.DELETE("/:id", h.Client.Delete)
		}

		tools := api.Group("/test-tools")
		{
			tools.GET("", h.TestTool.List)
			tools.POST("", h.TestTool.Create)
			tools.POST("/import", h.TestTool.Import)
			tools.GET("/:id", h.TestTool.Get)
			tools.PUT("/:id", h.TestTool.Update)
			tools.DELETE("/:id", h.TestTool.Delete)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.POST("", h.Project.Create)
			projects.GET("/:id", h.Project.Get)
			projects.PUT("/:id", h.Project.Update)
			projects.DELETE("/:id", middleware.RequireRole(entity.RoleManager), h.Project.Delete)
			projects.POST("/:id/rev-up", h.Revision.RevUp)

			rev := projects.Group("/:id/revisions/:rev")
			rev.GET("", h.Revision.GetRevision)
			rev.POST("/devices", h.Revision.AddDevices)
			rev.POST("/products", h.Revision.AddProducts)
			rev.PUT("/devices/:deviceId", h.Revision.UpdateDevice)
			rev.POST("/devices/:deviceId/deviations", h.Revision.AddDeviation)
			rev.DELETE("/devices/:deviceId/deviations/:deviationId", h.Revision.RemoveDeviation)
			rev.PUT("/devices/:deviceId/accessories", h.Revision.SetAccessories)
			rev.POST("/copy-from", h.Revision.CopyFrom)
			rev.GET("/offer", h.Export.Offer)
			rev.GET("/export", h.Export.Export)
			rev.GET("/csv", h.Export.CSV)

			projects.GET("/:id/general-deviations", h.Ledger.ListGeneralDeviations)
			projects.POST("/:id/general-deviations", h.Ledger.AddGeneralDeviation)
			projects.GET("/:id/files", h.Ledger.ListFiles)
			projects.POST("/:id/files", h.Ledger.UploadFiles)
			projects.GET("/:id/files/:fileId/download", h.Ledger.DownloadFile)

			projects.GET("/:id/spare-parts/:type", h.SparePart.List)
			projects.POST("/:id/spare-parts/:type", h.SparePart.Add)
			projects.PUT("/:id/spare-parts/:type/:noteId", h.SparePart.Edit)
			projects.DELETE("/:id/spare-parts/:type/:noteId", h.SparePart.Delete)
		}
	}
}
