package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/possuite/backend/internal/domain/ordering"
)

func buildTestCheck(t *testing.T) *ordering.Check {
	t.Helper()
	propertyID := uuid.New()
	check, err := ordering.NewCheck(propertyID, uuid.New(), uuid.New(), 101, "Alex", "2026-08-23")
	require.NoError(t, err)
	check.TableName = "12"

	burger, err := ordering.NewMenuItem(propertyID, "Cheeseburger", "", decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	mods := []ordering.ItemModifier{
		{Name: "No Onions", Price: decimal.Zero},
		{Name: "Extra Cheese", Price: decimal.RequireFromString("1.50")},
	}
	_, err = check.AddItem(burger, 1, 1, mods)
	require.NoError(t, err)

	soda, err := ordering.NewMenuItem(propertyID, "Soda", "", decimal.RequireFromString("3.00"))
	require.NoError(t, err)
	sodaItem, err := check.AddItem(soda, 2, 1, nil)
	require.NoError(t, err)
	require.NoError(t, check.VoidItem(sodaItem.ID, "spilled"))

	check.SetTax(decimal.RequireFromString("1.12"))
	return check
}

func TestBuildReceipt(t *testing.T) {
	check := buildTestCheck(t)
	require.NoError(t, check.AddPayment(ordering.TenderCash, decimal.RequireFromString("20.00"), decimal.Zero, ""))

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	printedAt := time.Date(2026, 8, 23, 18, 30, 0, 0, time.UTC)

	in := ReceiptInput{
		Check:        check,
		RvcName:      "Dining Room",
		OrderType:    "Dine In",
		PropertyName: "Downtown Grill",
		Location:     loc,
		PrintedAt:    printedAt,
	}
	b := BuildReceipt(in, 42)
	plain := b.PlainText()

	t.Run("falls back to property name header", func(t *testing.T) {
		assert.Contains(t, plain, "Downtown Grill")
	})

	t.Run("check metadata present", func(t *testing.T) {
		assert.Contains(t, plain, "Check #101")
		assert.Contains(t, plain, "Dining Room")
		assert.Contains(t, plain, "Table 12")
	})

	t.Run("non-voided items with extended price", func(t *testing.T) {
		assert.Contains(t, plain, "1 x Cheeseburger")
		assert.Contains(t, plain, "14.00")
		assert.NotContains(t, plain, "Soda", "voided items never print")
	})

	t.Run("zero-price modifiers print without a price", func(t *testing.T) {
		assert.Contains(t, plain, "No Onions")
		assert.Contains(t, plain, "Extra Cheese")
		for _, line := range strings.Split(plain, "\n") {
			if strings.Contains(line, "No Onions") {
				assert.NotContains(t, line, "0.00")
			}
			if strings.Contains(line, "Extra Cheese") {
				assert.Contains(t, line, "1.50")
			}
		}
	})

	t.Run("totals and payments", func(t *testing.T) {
		assert.Contains(t, plain, "Subtotal")
		assert.Contains(t, plain, "Tax")
		assert.Contains(t, plain, "Total")
		assert.Contains(t, plain, "15.12")
		assert.Contains(t, plain, "Cash")
		assert.Contains(t, plain, "20.00")
	})

	t.Run("change due computed from tendered minus owed", func(t *testing.T) {
		assert.Contains(t, plain, "Change Due")
		assert.Contains(t, plain, "4.88")
	})

	t.Run("timestamp rendered in property timezone", func(t *testing.T) {
		assert.Contains(t, plain, "2026-08-23 13:30:00")
	})

	t.Run("default trailer message", func(t *testing.T) {
		assert.Contains(t, plain, "Thank you for your visit!")
	})

	t.Run("ends with a cut", func(t *testing.T) {
		raw := b.Bytes()
		assert.Equal(t, []byte{0x1D, 'V', 0x01}, raw[len(raw)-3:])
	})
}

func TestBuildReceipt_ChangeEpsilon(t *testing.T) {
	propertyID := uuid.New()
	check, err := ordering.NewCheck(propertyID, uuid.New(), uuid.New(), 7, "Alex", "2026-08-23")
	require.NoError(t, err)
	item, err := ordering.NewMenuItem(propertyID, "Coffee", "", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	_, err = check.AddItem(item, 1, 0, nil)
	require.NoError(t, err)

	t.Run("exact payment shows no change line", func(t *testing.T) {
		require.NoError(t, check.AddPayment(ordering.TenderCard, decimal.RequireFromString("10.00"), decimal.Zero, ""))
		plain := BuildReceipt(ReceiptInput{Check: check, PropertyName: "X", PrintedAt: time.Now()}, 42).PlainText()
		assert.NotContains(t, plain, "Change Due")
	})

	t.Run("rounding noise below epsilon is suppressed", func(t *testing.T) {
		check.Payments = nil
		require.NoError(t, check.AddPayment(ordering.TenderCard, decimal.RequireFromString("10.004"), decimal.Zero, ""))
		plain := BuildReceipt(ReceiptInput{Check: check, PropertyName: "X", PrintedAt: time.Now()}, 42).PlainText()
		assert.NotContains(t, plain, "Change Due")
	})

	t.Run("real overpayment shows change", func(t *testing.T) {
		check.Payments = nil
		require.NoError(t, check.AddPayment(ordering.TenderCash, decimal.RequireFromString("10.01"), decimal.Zero, ""))
		plain := BuildReceipt(ReceiptInput{Check: check, PropertyName: "X", PrintedAt: time.Now()}, 42).PlainText()
		assert.Contains(t, plain, "Change Due")
		assert.Contains(t, plain, "0.01")
	})
}

func TestBuildReceipt_ConfiguredHeaderAndTrailer(t *testing.T) {
	check := buildTestCheck(t)
	in := ReceiptInput{
		Check:        check,
		PropertyName: "Fallback Name",
		HeaderLines:  []string{"THE GRILL", "123 Main St", "555-0100"},
		TrailerLines: []string{"Come back soon"},
		Discount:     decimal.RequireFromString("2.00"),
		PrintedAt:    time.Now(),
	}
	plain := BuildReceipt(in, 42).PlainText()
	assert.Contains(t, plain, "THE GRILL")
	assert.Contains(t, plain, "123 Main St")
	assert.NotContains(t, plain, "Fallback Name")
	assert.Contains(t, plain, "Come back soon")
	assert.NotContains(t, plain, "Thank you for your visit!")
	assert.Contains(t, plain, "Discount")
	assert.Contains(t, plain, "-2.00")
}

func TestBuildKitchenTicket(t *testing.T) {
	in := KitchenTicketInput{
		OrderNumber: 101,
		OrderType:   "Dine In",
		Table:       "12",
		Items: []TicketLine{
			{Quantity: 2, Name: "BURGER", Modifiers: []string{"NO ONIONS", "MED RARE"}, Seat: 1},
			{Quantity: 1, Name: "FRIES"},
		},
		PrintedAt: time.Date(2026, 8, 23, 18, 30, 0, 0, time.UTC),
	}
	b := BuildKitchenTicket(in, 42)
	plain := b.PlainText()

	assert.Contains(t, plain, "ORDER #101")
	assert.Contains(t, plain, "Dine In")
	assert.Contains(t, plain, "Table 12")
	assert.Contains(t, plain, "2 x BURGER")
	assert.Contains(t, plain, "> NO ONIONS")
	assert.Contains(t, plain, "> MED RARE")
	assert.Contains(t, plain, "Seat 1")
	assert.Contains(t, plain, "1 x FRIES")
	assert.Contains(t, plain, "18:30:00")

	t.Run("items print bold and double height", func(t *testing.T) {
		raw := b.Bytes()
		assert.Contains(t, string(raw), string([]byte{0x1D, '!', 0x01}), "double height")
		assert.Contains(t, string(raw), string([]byte{0x1B, 'E', 1}), "bold on")
	})

	t.Run("ends with a cut", func(t *testing.T) {
		raw := b.Bytes()
		assert.Equal(t, []byte{0x1D, 'V', 0x01}, raw[len(raw)-3:])
	})

	t.Run("composition is deterministic", func(t *testing.T) {
		again := BuildKitchenTicket(in, 42)
		assert.Equal(t, b.Bytes(), again.Bytes())
	})
}
