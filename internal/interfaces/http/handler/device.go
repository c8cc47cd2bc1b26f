package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apphardware "github.com/possuite/backend/internal/application/hardware"
	domainhardware "github.com/possuite/backend/internal/domain/hardware"
)

// DeviceHandler serves printer, kitchen display, and order device
// configuration.
type DeviceHandler struct {
	BaseHandler
	devices *apphardware.DeviceService
}

// NewDeviceHandler creates the device handler
func NewDeviceHandler(devices *apphardware.DeviceService) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

type createPrinterRequest struct {
	Name       string `json:"name" binding:"required"`
	Connection string `json:"connection" binding:"required,oneof=network serial usb"`
	Address    string `json:"address"`
	Port       int    `json:"port"`
	DevicePath string `json:"device_path"`
}

// CreatePrinter registers a printer
func (h *DeviceHandler) CreatePrinter(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	var req createPrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var printer *domainhardware.Printer
	var err error
	if domainhardware.ConnectionKind(req.Connection) == domainhardware.ConnectionNetwork {
		printer, err = h.devices.CreateNetworkPrinter(c.Request.Context(), propertyID, req.Name, req.Address, req.Port)
	} else {
		printer, err = h.devices.CreateLocalPrinter(c.Request.Context(), propertyID, req.Name, domainhardware.ConnectionKind(req.Connection), req.DevicePath)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, printer)
}

// ListPrinters lists the property's printers
func (h *DeviceHandler) ListPrinters(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	printers, err := h.devices.ListPrinters(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, printers)
}

// GetPrinter returns one printer
func (h *DeviceHandler) GetPrinter(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	printer, err := h.devices.GetPrinter(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, printer)
}

type configurePrinterRequest struct {
	CharWidth   int `json:"char_width"`
	MaxAttempts int `json:"max_attempts"`
}

// ConfigurePrinter updates a printer's print settings
func (h *DeviceHandler) ConfigurePrinter(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req configurePrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	printer, err := h.devices.ConfigurePrinter(c.Request.Context(), id, req.CharWidth, req.MaxAttempts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, printer)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetPrinterActive activates or deactivates a printer
func (h *DeviceHandler) SetPrinterActive(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.devices.SetPrinterActive(c.Request.Context(), id, *req.Active); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type createDisplayRequest struct {
	Name    string `json:"name" binding:"required"`
	Station string `json:"station" binding:"required"`
}

// CreateDisplay registers a kitchen display station
func (h *DeviceHandler) CreateDisplay(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	var req createDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	display, err := h.devices.CreateKitchenDisplay(c.Request.Context(), propertyID, req.Name, domainhardware.StationKind(req.Station))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, display)
}

// ListDisplays lists the property's kitchen displays
func (h *DeviceHandler) ListDisplays(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	displays, err := h.devices.ListDisplays(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, displays)
}

type alertThresholdsRequest struct {
	WarningAfterSec  int `json:"warning_after_sec" binding:"required,min=1"`
	CriticalAfterSec int `json:"critical_after_sec" binding:"required,min=1"`
}

// SetDisplayAlertThresholds updates a display's aging thresholds
func (h *DeviceHandler) SetDisplayAlertThresholds(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req alertThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.devices.SetDisplayAlertThresholds(c.Request.Context(), id, req.WarningAfterSec, req.CriticalAfterSec); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type showDraftsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetDisplayShowDrafts toggles dynamic order mode: whether unsent check
// items appear on the display as draft previews.
func (h *DeviceHandler) SetDisplayShowDrafts(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req showDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.devices.SetDisplayShowDrafts(c.Request.Context(), id, *req.Enabled); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type createOrderDeviceRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateOrderDevice registers an order device (a named routing target)
func (h *DeviceHandler) CreateOrderDevice(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	var req createOrderDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	device, err := h.devices.CreateOrderDevice(c.Request.Context(), propertyID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, device)
}

// ListOrderDevices lists the property's order devices with their links
func (h *DeviceHandler) ListOrderDevices(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	devices, err := h.devices.ListOrderDevices(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, devices)
}

type attachRequest struct {
	TargetID uuid.UUID `json:"target_id" binding:"required"`
	Position int       `json:"position"`
}

// AttachPrinter links a printer to an order device
func (h *DeviceHandler) AttachPrinter(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.devices.AttachPrinter(c.Request.Context(), id, req.TargetID, req.Position); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DetachPrinter unlinks a printer from an order device
func (h *DeviceHandler) DetachPrinter(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	printerID, ok := h.parseUUIDParam(c, "printerId")
	if !ok {
		return
	}
	if err := h.devices.DetachPrinter(c.Request.Context(), id, printerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AttachDisplay links a kitchen display to an order device
func (h *DeviceHandler) AttachDisplay(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.devices.AttachDisplay(c.Request.Context(), id, req.TargetID, req.Position); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DetachDisplay unlinks a kitchen display from an order device
func (h *DeviceHandler) DetachDisplay(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	displayID, ok := h.parseUUIDParam(c, "displayId")
	if !ok {
		return
	}
	if err := h.devices.DetachDisplay(c.Request.Context(), id, displayID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
