package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appkds "github.com/possuite/backend/internal/application/kds"
	"github.com/possuite/backend/internal/application/ordering"
	appprinting "github.com/possuite/backend/internal/application/printing"
	domainordering "github.com/possuite/backend/internal/domain/ordering"
)

// OrderHandler serves the guest check lifecycle and the send/receipt
// operations that fan items out to kitchen devices.
type OrderHandler struct {
	BaseHandler
	checks  *ordering.CheckService
	fanout  *appprinting.OrderFanoutService
	tickets *appkds.TicketService
}

// NewOrderHandler creates the order handler
func NewOrderHandler(checks *ordering.CheckService, fanout *appprinting.OrderFanoutService, tickets *appkds.TicketService) *OrderHandler {
	return &OrderHandler{checks: checks, fanout: fanout, tickets: tickets}
}

type openCheckRequest struct {
	RvcID        uuid.UUID `json:"rvc_id" binding:"required"`
	CheckNumber  int       `json:"check_number" binding:"required,min=1"`
	EmployeeName string    `json:"employee_name"`
	OrderType    string    `json:"order_type" binding:"omitempty,oneof=dine_in takeout delivery"`
	TableName    string    `json:"table_name"`
	GuestCount   int       `json:"guest_count"`
}

// OpenCheck opens a guest check in a revenue center
func (h *OrderHandler) OpenCheck(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	employeeID, ok := h.requireEmployee(c)
	if !ok {
		return
	}
	var req openCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	check, err := h.checks.OpenCheck(c.Request.Context(), ordering.OpenCheckInput{
		PropertyID:   propertyID,
		RvcID:        req.RvcID,
		EmployeeID:   employeeID,
		EmployeeName: req.EmployeeName,
		CheckNumber:  req.CheckNumber,
		OrderType:    domainordering.OrderType(req.OrderType),
		TableName:    req.TableName,
		GuestCount:   req.GuestCount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, check)
}

// GetCheck returns one check with its items and payments
func (h *OrderHandler) GetCheck(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	check, err := h.checks.GetCheck(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// ListOpenChecks lists the open checks in a revenue center
func (h *OrderHandler) ListOpenChecks(c *gin.Context) {
	rvcID, ok := h.parseUUIDParam(c, "rvcId")
	if !ok {
		return
	}
	checks, err := h.checks.ListOpenChecks(c.Request.Context(), rvcID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checks)
}

type addItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
	Seat       int       `json:"seat"`
	Modifiers  []string  `json:"modifiers"`
}

// AddItem adds a menu item to an open check
func (h *OrderHandler) AddItem(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	item, err := h.checks.AddItem(c.Request.Context(), checkID, req.MenuItemID, req.Quantity, req.Seat, req.Modifiers)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

type sendItemsRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids"`
}

// SendItems fans a check's unsent items out to kitchen printers and
// displays. An empty item list sends everything not yet sent.
func (h *OrderHandler) SendItems(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	employeeID, ok := h.requireEmployee(c)
	if !ok {
		return
	}
	var req sendItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.fanout.SendCheckItems(c.Request.Context(), checkID, req.ItemIDs, employeeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type previewItemsRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids" binding:"required,min=1"`
}

// PreviewItems pushes unsent items to draft-enabled displays without
// sending them (dynamic order mode).
func (h *OrderHandler) PreviewItems(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req previewItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.fanout.PreviewCheckItems(c.Request.Context(), checkID, req.ItemIDs); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type voidItemRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// VoidItem voids a check item and clears it from every kitchen ticket
// that carries it.
func (h *OrderHandler) VoidItem(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	var req voidItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.tickets.VoidCheckItem(c.Request.Context(), itemID, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type setTaxRequest struct {
	Tax decimal.Decimal `json:"tax" binding:"required"`
}

// SetTax sets the tax amount on an open check
func (h *OrderHandler) SetTax(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req setTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	check, err := h.checks.SetTax(c.Request.Context(), checkID, req.Tax)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

type receiptTextRequest struct {
	Header  string `json:"header"`
	Trailer string `json:"trailer"`
}

// SetReceiptText configures a property's receipt header and trailer
func (h *OrderHandler) SetReceiptText(c *gin.Context) {
	propertyID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req receiptTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	property, err := h.checks.SetReceiptText(c.Request.Context(), propertyID, req.Header, req.Trailer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

type applyDiscountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ApplyDiscount sets the check-level discount on an open check
func (h *OrderHandler) ApplyDiscount(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req applyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	check, err := h.checks.ApplyDiscount(c.Request.Context(), checkID, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

type addPaymentRequest struct {
	Tender    string          `json:"tender" binding:"required,oneof=cash card gift_card house"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Tip       decimal.Decimal `json:"tip"`
	Reference string          `json:"reference"`
}

// AddPayment records a payment against an open check
func (h *OrderHandler) AddPayment(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req addPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	check, err := h.checks.AddPayment(c.Request.Context(), checkID, domainordering.TenderKind(req.Tender), req.Amount, req.Tip, req.Reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// CloseCheck closes a fully paid check
func (h *OrderHandler) CloseCheck(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	check, err := h.checks.CloseCheck(c.Request.Context(), checkID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

type printReceiptRequest struct {
	PrinterID  uuid.UUID `json:"printer_id" binding:"required"`
	OpenDrawer bool      `json:"open_drawer"`
}

// PrintReceipt queues a guest receipt for the check
func (h *OrderHandler) PrintReceipt(c *gin.Context) {
	checkID, ok := h.parseID(c)
	if !ok {
		return
	}
	employeeID, ok := h.requireEmployee(c)
	if !ok {
		return
	}
	var req printReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	job, err := h.fanout.PrintReceipt(c.Request.Context(), checkID, req.PrinterID, employeeID, req.OpenDrawer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, job)
}
