package routes

import (
	"net/http"

	"repairshop/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addWorkshopRoutes(rg *gin.RouterGroup, jobs *handlers.JobRecordHandler, payments *handlers.BillingPaymentHandler) {
	jobGroup := rg.Group("/jobs")
	{
		jobGroup.POST("", jobs.CreateJob)
		jobGroup.GET("", jobs.ListJobs)
		jobGroup.GET("/:id", jobs.GetJob)
		jobGroup.PATCH("/:id/status", jobs.UpdateStatus)
		jobGroup.PATCH("/:id/stage", jobs.UpdateStage)
		jobGroup.POST("/:id/ledger", jobs.MutateLedger)
		jobGroup.DELETE("/:id", jobs.SoftDeleteJob)
		jobGroup.POST("/:id/restore", jobs.RestoreJob)
		jobGroup.POST("/:id/archive", jobs.ArchiveJob)
	}

	// Customer read-only view behind the lookup code.
	rg.GET("/lookup/:code", jobs.LookupJob)

	paymentGroup := rg.Group("/payments")
	{
		paymentGroup.POST("/job/:job_id", payments.CreatePaymentByJobID)
		paymentGroup.GET("/job/:job_id", payments.GetPaymentByJobID)
	}
}
