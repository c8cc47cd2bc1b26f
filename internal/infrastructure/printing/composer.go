package printing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/infrastructure/escpos"
)

// changeEpsilon suppresses change-due lines produced by rounding noise
var changeEpsilon = decimal.New(5, -3) // 0.005

// ReceiptInput carries everything a receipt needs. Composition is pure:
// no lookups, no clock reads, no side effects.
type ReceiptInput struct {
	Check           *ordering.Check
	RvcName         string
	OrderType       string
	PropertyName    string
	PropertyAddress string
	HeaderLines     []string // fallback: property name/address
	TrailerLines    []string // fallback: thank-you message
	Discount        decimal.Decimal
	Location        *time.Location // property timezone for the footer timestamp
	PrintedAt       time.Time
	OpenDrawer      bool
}

// TicketLine is one item on a kitchen ticket
type TicketLine struct {
	Quantity  int
	Name      string
	Modifiers []string
	Seat      int
}

// KitchenTicketInput carries everything a kitchen ticket needs
type KitchenTicketInput struct {
	OrderNumber int
	OrderType   string
	Table       string
	Items       []TicketLine
	PrintedAt   time.Time
	Location    *time.Location
}

// BuildReceipt composes a customer receipt as formatting instructions
func BuildReceipt(in ReceiptInput, charWidth int) *escpos.Builder {
	b := escpos.NewBuilder(charWidth)
	check := in.Check

	header := in.HeaderLines
	if len(header) == 0 {
		header = []string{in.PropertyName}
		if in.PropertyAddress != "" {
			header = append(header, in.PropertyAddress)
		}
	}
	b.Align(escpos.AlignCenter)
	for idx, line := range header {
		if idx == 0 {
			b.DoubleSize().Line(line).NormalSize()
		} else {
			b.Line(line)
		}
	}
	b.Align(escpos.AlignLeft)
	b.Separator('-')

	b.LeftRight(fmt.Sprintf("Check #%d", check.CheckNumber), in.RvcName)
	if in.OrderType != "" {
		b.Line(in.OrderType)
	}
	if check.TableName != "" {
		b.Line("Table " + check.TableName)
	}
	b.Separator('-')

	for _, item := range check.Items {
		if item.Voided {
			continue
		}
		left := fmt.Sprintf("%d x %s", item.Quantity, item.Name)
		b.LeftRight(left, money(item.LineTotal()))
		for _, mod := range item.Modifiers {
			if mod.Price.IsZero() {
				b.Line("   " + mod.Name)
			} else {
				b.LeftRight("   "+mod.Name, money(mod.Price))
			}
		}
	}
	b.Separator('-')

	b.LeftRight("Subtotal", money(check.Subtotal))
	if in.Discount.IsPositive() {
		b.LeftRight("Discount", "-"+money(in.Discount))
	}
	b.LeftRight("Tax", money(check.TaxTotal))
	b.Bold(true).LeftRight("Total", money(check.Total)).Bold(false)

	if len(check.Payments) > 0 {
		b.Separator('-')
		tendered := decimal.Zero
		for _, p := range check.Payments {
			label := tenderLabel(p.Tender)
			b.LeftRight(label, money(p.Amount))
			if p.TipAmount.IsPositive() {
				b.LeftRight("   Tip", money(p.TipAmount))
			}
			tendered = tendered.Add(p.Amount)
		}
		change := tendered.Sub(check.Total)
		if change.GreaterThan(changeEpsilon) {
			b.LeftRight("Change Due", money(change))
		}
	}

	b.Separator('-')
	b.Align(escpos.AlignCenter)
	trailer := in.TrailerLines
	if len(trailer) == 0 {
		trailer = []string{"Thank you for your visit!"}
	}
	for _, line := range trailer {
		b.Line(line)
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	b.Line(in.PrintedAt.In(loc).Format("2006-01-02 15:04:05"))

	b.Feed(2).Cut(true)
	if in.OpenDrawer {
		b.OpenCashDrawer()
	}
	return b
}

// BuildKitchenTicket composes a kitchen ticket. Items print bold and
// double-height so they read across the line.
func BuildKitchenTicket(in KitchenTicketInput, charWidth int) *escpos.Builder {
	b := escpos.NewBuilder(charWidth)

	b.Align(escpos.AlignCenter).DoubleSize()
	b.Line(fmt.Sprintf("ORDER #%d", in.OrderNumber))
	b.NormalSize()
	if in.OrderType != "" {
		b.Line(in.OrderType)
	}
	if in.Table != "" {
		b.Line("Table " + in.Table)
	}
	b.Align(escpos.AlignLeft)
	b.Separator('=')

	b.DoubleHeight()
	for _, item := range in.Items {
		b.Bold(true).Line(fmt.Sprintf("%d x %s", item.Quantity, item.Name)).Bold(false)
		for _, mod := range item.Modifiers {
			b.Line("  > " + mod)
		}
		if item.Seat > 0 {
			b.Line(fmt.Sprintf("  Seat %d", item.Seat))
		}
	}
	b.NormalSize()
	b.Separator('=')

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	b.Line(in.PrintedAt.In(loc).Format("15:04:05"))
	b.Feed(2).Cut(true)
	return b
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func tenderLabel(t ordering.TenderKind) string {
	switch t {
	case ordering.TenderCash:
		return "Cash"
	case ordering.TenderCard:
		return "Card"
	case ordering.TenderGiftCard:
		return "Gift Card"
	case ordering.TenderHouse:
		return "House Account"
	default:
		return string(t)
	}
}
