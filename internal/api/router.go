package api

import (
	"github.com/gin-gonic/gin"

	cronapi "github.com/insuranceguard/insuranceguard/internal/api/cron"
	v1 "github.com/insuranceguard/insuranceguard/internal/api/v1"
	"github.com/insuranceguard/insuranceguard/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Customer *v1.CustomerHandler
	Invoice  *v1.InvoiceHandler
	Payout   *v1.PayoutHandler
	Ledger   *v1.LedgerHandler
	Audit    *v1.AuditHandler

	CronDunning *cronapi.DunningHandler
	CronBackup  *cronapi.BackupHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ActorMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/dunning/sweep", handlers.CronDunning.TriggerSweep)
		cronGroup.POST("/backup", handlers.CronBackup.TriggerBackup)
	}

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.GetCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.POST("/:id/archive", handlers.Customer.ArchiveCustomer)

		customers.GET("/:id/balance", handlers.Ledger.GetBalance)
		customers.GET("/:id/balance/history", handlers.Ledger.GetHistory)
		customers.POST("/:id/balance/topup", handlers.Ledger.TopUp)
		customers.POST("/:id/balance/deduct", handlers.Ledger.Deduct)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.IssueInvoice)
		invoices.GET("", handlers.Invoice.GetInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/pay", handlers.Invoice.MarkInvoicePaid)
		invoices.POST("/:id/remind", handlers.Invoice.SendReminder)
	}

	payouts := router.Group("/payouts")
	{
		payouts.POST("", handlers.Payout.CreatePayout)
		payouts.GET("/pending", handlers.Payout.GetPendingPayouts)
		payouts.GET("/:id", handlers.Payout.GetPayout)
		payouts.POST("/:id/approve", handlers.Payout.ApprovePayout)
		payouts.POST("/:id/reject", handlers.Payout.RejectPayout)
	}

	router.GET("/audit", handlers.Audit.GetEntries)
}
