package router

import (
	"github.com/gin-gonic/gin"

	"github.com/possuite/backend/internal/interfaces/http/handler"
)

// Handlers bundles everything the POS API mounts
type Handlers struct {
	System  *handler.SystemHandler
	Device  *handler.DeviceHandler
	Routing *handler.RoutingHandler
	Order   *handler.OrderHandler
	Print   *handler.PrintHandler
	Kds     *handler.KdsHandler
	Agent   *handler.AgentHandler
}

// Setup mounts the full POS API on the engine. Health endpoints live
// outside the versioned prefix so load balancers can reach them bare.
func Setup(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	mountDevices(api, h)
	mountRouting(api, h)
	mountOrders(api, h)
	mountPrintJobs(api, h)
	mountKds(api, h)
	mountAgents(api, h)
}

func mountDevices(api *gin.RouterGroup, h Handlers) {
	printers := api.Group("/printers")
	printers.POST("", h.Device.CreatePrinter)
	printers.GET("", h.Device.ListPrinters)
	printers.GET("/:id", h.Device.GetPrinter)
	printers.PATCH("/:id/settings", h.Device.ConfigurePrinter)
	printers.PATCH("/:id/active", h.Device.SetPrinterActive)

	displays := api.Group("/displays")
	displays.POST("", h.Device.CreateDisplay)
	displays.GET("", h.Device.ListDisplays)
	displays.PATCH("/:id/thresholds", h.Device.SetDisplayAlertThresholds)
	displays.PATCH("/:id/show-drafts", h.Device.SetDisplayShowDrafts)

	devices := api.Group("/order-devices")
	devices.POST("", h.Device.CreateOrderDevice)
	devices.GET("", h.Device.ListOrderDevices)
	devices.POST("/:id/printers", h.Device.AttachPrinter)
	devices.DELETE("/:id/printers/:printerId", h.Device.DetachPrinter)
	devices.POST("/:id/displays", h.Device.AttachDisplay)
	devices.DELETE("/:id/displays/:displayId", h.Device.DetachDisplay)
}

func mountRouting(api *gin.RouterGroup, h Handlers) {
	routing := api.Group("/routing")

	classes := routing.Group("/print-classes")
	classes.POST("", h.Routing.CreatePrintClass)
	classes.GET("", h.Routing.ListPrintClasses)

	items := routing.Group("/menu-items")
	items.PUT("/:id/print-class", h.Routing.AssignPrintClass)
	items.DELETE("/:id/print-class", h.Routing.ClearPrintClass)

	routes := routing.Group("/routes")
	routes.POST("", h.Routing.CreateRoute)
	routes.GET("", h.Routing.ListRoutes)
	routes.DELETE("/:id", h.Routing.DeleteRoute)

	routing.GET("/resolve/:menuItemId/:rvcId", h.Routing.Resolve)
}

func mountOrders(api *gin.RouterGroup, h Handlers) {
	checks := api.Group("/checks")
	checks.POST("", h.Order.OpenCheck)
	checks.GET("/:id", h.Order.GetCheck)
	checks.POST("/:id/items", h.Order.AddItem)
	checks.POST("/:id/send", h.Order.SendItems)
	checks.POST("/:id/preview", h.Order.PreviewItems)
	checks.PUT("/:id/tax", h.Order.SetTax)
	checks.PUT("/:id/discount", h.Order.ApplyDiscount)
	checks.POST("/:id/payments", h.Order.AddPayment)
	checks.POST("/:id/close", h.Order.CloseCheck)
	checks.POST("/:id/receipt", h.Order.PrintReceipt)
	checks.POST("/items/:itemId/void", h.Order.VoidItem)
	checks.GET("/open/:rvcId", h.Order.ListOpenChecks)

	properties := api.Group("/properties")
	properties.PUT("/:id/receipt-text", h.Order.SetReceiptText)
}

func mountPrintJobs(api *gin.RouterGroup, h Handlers) {
	jobs := api.Group("/print-jobs")
	jobs.GET("", h.Print.ListJobs)
	jobs.GET("/overview", h.Print.QueueOverview)
	jobs.GET("/:id", h.Print.GetJob)
	jobs.POST("/:id/requeue", h.Print.RequeueJob)
}

func mountKds(api *gin.RouterGroup, h Handlers) {
	kds := api.Group("/kds")
	kds.GET("/displays/:displayId/tickets", h.Kds.ListLive)
	kds.GET("/displays/:displayId/stream", h.Kds.Stream)
	kds.POST("/displays/:displayId/heartbeat", h.Kds.Heartbeat)
	kds.POST("/tickets/:id/bump", h.Kds.Bump)
	kds.POST("/tickets/:id/recall", h.Kds.Recall)
	kds.POST("/ticket-items/:itemId/ready", h.Kds.MarkItemReady)
	kds.DELETE("/ticket-items/:itemId/ready", h.Kds.UnmarkItemReady)
	kds.GET("/ops/stream", h.Kds.OpsStream)
}

func mountAgents(api *gin.RouterGroup, h Handlers) {
	agents := api.Group("/agents")
	agents.GET("/connect", h.Agent.Connect)
}
