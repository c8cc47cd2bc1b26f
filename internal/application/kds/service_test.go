package kds

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	domainkds "github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/domain/shared"
)

type fakeTickets struct {
	tickets map[uuid.UUID]*domainkds.KdsTicket
}

func (f *fakeTickets) FindByID(_ context.Context, id uuid.UUID) (*domainkds.KdsTicket, error) {
	if t, ok := f.tickets[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}
func (f *fakeTickets) FindAll(context.Context, shared.Filter) ([]domainkds.KdsTicket, error) {
	return nil, nil
}
func (f *fakeTickets) Save(_ context.Context, t *domainkds.KdsTicket) error {
	f.tickets[t.ID] = t
	return nil
}
func (f *fakeTickets) Delete(context.Context, uuid.UUID) error             { return nil }
func (f *fakeTickets) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }
func (f *fakeTickets) FindLiveByDisplay(_ context.Context, displayID uuid.UUID) ([]domainkds.KdsTicket, error) {
	var out []domainkds.KdsTicket
	for _, t := range f.tickets {
		if t.DisplayID == displayID && t.IsLive() {
			out = append(out, *t)
		}
	}
	return out, nil
}
func (f *fakeTickets) FindByCheckItem(_ context.Context, checkItemID uuid.UUID) ([]domainkds.KdsTicket, error) {
	var out []domainkds.KdsTicket
	for _, t := range f.tickets {
		if t.FindItemByCheckItem(checkItemID) != nil {
			out = append(out, *t)
		}
	}
	return out, nil
}
func (f *fakeTickets) FindOpenByCheckAndDisplay(_ context.Context, checkID, displayID uuid.UUID) (*domainkds.KdsTicket, error) {
	for _, t := range f.tickets {
		if t.CheckID == checkID && t.DisplayID == displayID && t.Status != domainkds.TicketStatusBumped {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}
func (f *fakeTickets) FindOpenByCheck(_ context.Context, checkID uuid.UUID) ([]domainkds.KdsTicket, error) {
	var out []domainkds.KdsTicket
	for _, t := range f.tickets {
		if t.CheckID == checkID && t.Status != domainkds.TicketStatusBumped {
			out = append(out, *t)
		}
	}
	return out, nil
}
func (f *fakeTickets) FindByTicketItem(_ context.Context, ticketItemID uuid.UUID) (*domainkds.KdsTicket, error) {
	for _, t := range f.tickets {
		for idx := range t.Items {
			if t.Items[idx].ID == ticketItemID {
				return t, nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

type fakeDisplays struct {
	displays map[uuid.UUID]*hardware.KitchenDisplay
}

func (f *fakeDisplays) FindByID(_ context.Context, id uuid.UUID) (*hardware.KitchenDisplay, error) {
	if d, ok := f.displays[id]; ok {
		return d, nil
	}
	return nil, shared.ErrNotFound
}
func (f *fakeDisplays) FindAll(context.Context, shared.Filter) ([]hardware.KitchenDisplay, error) {
	return nil, nil
}
func (f *fakeDisplays) Save(_ context.Context, d *hardware.KitchenDisplay) error {
	f.displays[d.ID] = d
	return nil
}
func (f *fakeDisplays) Delete(context.Context, uuid.UUID) error             { return nil }
func (f *fakeDisplays) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }
func (f *fakeDisplays) FindByIDs(context.Context, []uuid.UUID) ([]hardware.KitchenDisplay, error) {
	return nil, nil
}
func (f *fakeDisplays) FindByProperty(context.Context, uuid.UUID) ([]hardware.KitchenDisplay, error) {
	return nil, nil
}
func (f *fakeDisplays) FindStaleOnline(_ context.Context, seenBefore time.Time) ([]hardware.KitchenDisplay, error) {
	var out []hardware.KitchenDisplay
	for _, d := range f.displays {
		if d.IsOnline && (d.LastSeenAt == nil || d.LastSeenAt.Before(seenBefore)) {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeChecks struct {
	checks map[uuid.UUID]*ordering.Check
}

func (f *fakeChecks) FindByID(_ context.Context, id uuid.UUID) (*ordering.Check, error) {
	if c, ok := f.checks[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}
func (f *fakeChecks) FindAll(context.Context, shared.Filter) ([]ordering.Check, error) {
	return nil, nil
}
func (f *fakeChecks) Save(_ context.Context, c *ordering.Check) error {
	f.checks[c.ID] = c
	return nil
}
func (f *fakeChecks) Delete(context.Context, uuid.UUID) error             { return nil }
func (f *fakeChecks) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }
func (f *fakeChecks) FindOpenByRvc(context.Context, uuid.UUID) ([]ordering.Check, error) {
	return nil, nil
}
func (f *fakeChecks) FindByNumber(context.Context, uuid.UUID, string, int) (*ordering.Check, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeChecks) FindByItemID(_ context.Context, itemID uuid.UUID) (*ordering.Check, error) {
	for _, c := range f.checks {
		if c.FindItem(itemID) != nil {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

type ticketFixture struct {
	svc        *TicketService
	tickets    *fakeTickets
	displays   *fakeDisplays
	checks     *fakeChecks
	propertyID uuid.UUID
	displayID  uuid.UUID
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	f := &ticketFixture{
		tickets:    &fakeTickets{tickets: make(map[uuid.UUID]*domainkds.KdsTicket)},
		displays:   &fakeDisplays{displays: make(map[uuid.UUID]*hardware.KitchenDisplay)},
		checks:     &fakeChecks{checks: make(map[uuid.UUID]*ordering.Check)},
		propertyID: uuid.New(),
	}
	display, err := hardware.NewKitchenDisplay(f.propertyID, "Grill KDS", hardware.StationHot)
	require.NoError(t, err)
	f.displayID = display.ID
	require.NoError(t, f.displays.Save(context.Background(), display))

	f.svc = NewTicketService(f.tickets, f.displays, f.checks, nil, zap.NewNop())
	return f
}

func (f *ticketFixture) addTicket(t *testing.T, checkNumber int, checkItemIDs ...uuid.UUID) *domainkds.KdsTicket {
	t.Helper()
	ticket, err := domainkds.NewKdsTicket(f.propertyID, f.displayID, uuid.New(), checkNumber, domainkds.OrderDineIn, "12", false)
	require.NoError(t, err)
	for _, id := range checkItemIDs {
		ticket.AddItem(id, "Burger", 1, "", 0)
	}
	require.NoError(t, f.tickets.Save(context.Background(), ticket))
	return ticket
}

func TestTicketService_BumpAndRecall(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	employeeID := uuid.New()
	ticket := f.addTicket(t, 101, uuid.New(), uuid.New())

	require.NoError(t, f.svc.Bump(ctx, ticket.ID, employeeID))
	assert.Equal(t, domainkds.TicketStatusBumped, ticket.Status)
	require.NotNil(t, ticket.BumpedAt)
	for _, item := range ticket.Items {
		assert.Equal(t, domainkds.ItemStatusBumped, item.Status)
	}

	t.Run("second bump is a silent no-op", func(t *testing.T) {
		firstBump := *ticket.BumpedAt
		require.NoError(t, f.svc.Bump(ctx, ticket.ID, uuid.New()))
		assert.Equal(t, firstBump, *ticket.BumpedAt)
		assert.Equal(t, employeeID, *ticket.BumpedByEmployeeID)
	})

	t.Run("recall resets every item", func(t *testing.T) {
		require.NoError(t, f.svc.Recall(ctx, ticket.ID))
		assert.Equal(t, domainkds.TicketStatusActive, ticket.Status)
		assert.True(t, ticket.IsRecalled)
		assert.Nil(t, ticket.BumpedAt)
		for _, item := range ticket.Items {
			assert.Equal(t, domainkds.ItemStatusPending, item.Status)
			assert.False(t, item.IsReady)
		}
	})
}

func TestTicketService_ListLiveOrdering(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	older := f.addTicket(t, 1, uuid.New())
	newer := f.addTicket(t, 2, uuid.New())
	older.CreatedAt = time.Now().Add(-10 * time.Minute)
	newer.CreatedAt = time.Now().Add(-5 * time.Minute)
	recalled := f.addTicket(t, 3, uuid.New())
	recalled.CreatedAt = time.Now().Add(-1 * time.Minute)
	require.NoError(t, recalled.Bump(uuid.New(), time.Now()))
	require.NoError(t, recalled.Recall())

	bumped := f.addTicket(t, 4, uuid.New())
	require.NoError(t, bumped.Bump(uuid.New(), time.Now()))

	live, err := f.svc.ListLive(ctx, f.displayID)
	require.NoError(t, err)
	require.Len(t, live, 3, "bumped tickets are excluded")
	assert.Equal(t, recalled.ID, live[0].ID, "recalled tickets jump the queue")
	assert.Equal(t, older.ID, live[1].ID)
	assert.Equal(t, newer.ID, live[2].ID)
}

func TestTicketService_ReadyFlags(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.addTicket(t, 7, uuid.New())
	itemID := ticket.Items[0].ID

	require.NoError(t, f.svc.MarkReady(ctx, itemID))
	assert.True(t, ticket.Items[0].IsReady)
	require.NotNil(t, ticket.Items[0].ReadyAt)

	require.NoError(t, f.svc.UnmarkReady(ctx, itemID))
	assert.False(t, ticket.Items[0].IsReady)
	assert.Nil(t, ticket.Items[0].ReadyAt)

	t.Run("unknown ticket item", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.MarkReady(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestTicketService_VoidCheckItem_CrossTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	property := f.propertyID
	check, err := ordering.NewCheck(property, uuid.New(), uuid.New(), 55, "Dana", "2026-08-23")
	require.NoError(t, err)
	menuItem, err := ordering.NewMenuItem(property, "Burger", "", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	checkItem, err := check.AddItem(menuItem, 1, 1, nil)
	require.NoError(t, err)
	checkItemID := checkItem.ID
	require.NoError(t, f.checks.Save(ctx, check))

	// same check item lands on the hot line and the expo display
	hot := f.addTicket(t, 55, checkItemID)
	expo, err := domainkds.NewKdsTicket(property, uuid.New(), check.ID, 55, domainkds.OrderDineIn, "12", false)
	require.NoError(t, err)
	expo.AddItem(checkItemID, "Burger", 1, "", 1)
	require.NoError(t, f.tickets.Save(ctx, expo))

	require.NoError(t, f.svc.VoidCheckItem(ctx, checkItemID, "guest changed order"))

	assert.True(t, check.FindItem(checkItemID).Voided)
	for _, ticketID := range []uuid.UUID{hot.ID, expo.ID} {
		saved, err := f.tickets.FindByID(ctx, ticketID)
		require.NoError(t, err)
		item := saved.FindItemByCheckItem(checkItemID)
		require.NotNil(t, item)
		assert.Equal(t, domainkds.ItemStatusVoided, item.Status)
		assert.False(t, item.IsReady)
	}

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, f.svc.VoidCheckItem(ctx, checkItemID, "again"))
	})
}

func TestTicketService_MarkCheckPaid(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	checkID := uuid.New()

	// the check spans two displays; a third ticket is already bumped
	hot, err := domainkds.NewKdsTicket(f.propertyID, f.displayID, checkID, 88, domainkds.OrderDineIn, "4", false)
	require.NoError(t, err)
	expo, err := domainkds.NewKdsTicket(f.propertyID, uuid.New(), checkID, 88, domainkds.OrderDineIn, "4", false)
	require.NoError(t, err)
	done, err := domainkds.NewKdsTicket(f.propertyID, uuid.New(), checkID, 88, domainkds.OrderDineIn, "4", false)
	require.NoError(t, err)
	require.NoError(t, done.Bump(uuid.New(), time.Now()))
	for _, ticket := range []*domainkds.KdsTicket{hot, expo, done} {
		require.NoError(t, f.tickets.Save(ctx, ticket))
	}

	require.NoError(t, f.svc.MarkCheckPaid(ctx, checkID))

	for _, id := range []uuid.UUID{hot.ID, expo.ID} {
		saved, err := f.tickets.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, saved.Paid)
	}
	saved, err := f.tickets.FindByID(ctx, done.ID)
	require.NoError(t, err)
	assert.False(t, saved.Paid, "bumped tickets are left alone")

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, f.svc.MarkCheckPaid(ctx, checkID))
	})
}

func TestCheckListener_ClosedCheckFlagsTicketsPaid(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	checkID := uuid.New()

	ticket, err := domainkds.NewKdsTicket(f.propertyID, f.displayID, checkID, 42, domainkds.OrderDineIn, "9", false)
	require.NoError(t, err)
	require.NoError(t, f.tickets.Save(ctx, ticket))

	listener := NewCheckListener(f.svc, zap.NewNop())
	assert.Contains(t, listener.EventTypes(), ordering.EventCheckClosed)

	evt := ordering.NewCheckClosedEvent(checkID, f.propertyID, decimal.RequireFromString("30.00"))
	require.NoError(t, listener.Handle(ctx, evt))

	saved, err := f.tickets.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, saved.Paid)

	t.Run("unrelated events are ignored", func(t *testing.T) {
		other := domainkds.NewTicketRecalledEvent(ticket.ID, f.propertyID, f.displayID)
		require.NoError(t, listener.Handle(ctx, other))
	})
}

func TestTicketService_Heartbeat(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Heartbeat(ctx, f.displayID))
	display, err := f.displays.FindByID(ctx, f.displayID)
	require.NoError(t, err)
	assert.True(t, display.IsOnline)
	require.NotNil(t, display.LastSeenAt)

	t.Run("unknown display", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.Heartbeat(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestTicketService_MissingTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	assert.ErrorIs(t, f.svc.Bump(ctx, uuid.New(), uuid.New()), shared.ErrNotFound)
	assert.ErrorIs(t, f.svc.Recall(ctx, uuid.New()), shared.ErrNotFound)
}
