package kds

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveTicket(t *testing.T) *KdsTicket {
	t.Helper()
	ticket, err := NewKdsTicket(uuid.New(), uuid.New(), uuid.New(), 42, OrderDineIn, "12", false)
	require.NoError(t, err)
	ticket.ClearDomainEvents()
	return ticket
}

func TestNewKdsTicket(t *testing.T) {
	propertyID := uuid.New()

	t.Run("active ticket", func(t *testing.T) {
		ticket, err := NewKdsTicket(propertyID, uuid.New(), uuid.New(), 7, OrderTakeout, "", false)
		require.NoError(t, err)
		assert.Equal(t, TicketStatusActive, ticket.Status)
		assert.False(t, ticket.IsPreview)
		require.Len(t, ticket.GetDomainEvents(), 1)
		assert.Equal(t, EventTicketCreated, ticket.GetDomainEvents()[0].EventType())
	})

	t.Run("draft ticket fires no created event", func(t *testing.T) {
		ticket, err := NewKdsTicket(propertyID, uuid.New(), uuid.New(), 7, OrderDineIn, "5", true)
		require.NoError(t, err)
		assert.Equal(t, TicketStatusDraft, ticket.Status)
		assert.True(t, ticket.IsPreview)
		assert.Empty(t, ticket.GetDomainEvents())
	})

	t.Run("invalid order type", func(t *testing.T) {
		_, err := NewKdsTicket(propertyID, uuid.New(), uuid.New(), 7, OrderType("drone"), "", false)
		assert.Error(t, err)
	})
}

func TestKdsTicket_AddRemoveItem(t *testing.T) {
	ticket := newActiveTicket(t)
	checkItemID := uuid.New()

	item := ticket.AddItem(checkItemID, "Burger", 2, "no onions", 1)
	require.NotNil(t, item)
	assert.Equal(t, ItemStatusPending, item.Status)
	assert.False(t, item.IsReady)

	t.Run("adding the same check item is a no-op", func(t *testing.T) {
		again := ticket.AddItem(checkItemID, "Burger", 2, "no onions", 1)
		assert.Equal(t, item.ID, again.ID)
		assert.Len(t, ticket.Items, 1)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		ticket.RemoveItem(checkItemID)
		assert.Empty(t, ticket.Items)
		ticket.RemoveItem(checkItemID)
		assert.Empty(t, ticket.Items)
	})
}

func TestKdsTicket_Readiness(t *testing.T) {
	ticket := newActiveTicket(t)
	item := ticket.AddItem(uuid.New(), "Soup", 1, "", 0)

	now := time.Now()
	require.NoError(t, ticket.MarkReady(item.ID, now))
	assert.True(t, item.IsReady)
	require.NotNil(t, item.ReadyAt)
	assert.True(t, item.ReadyAt.Equal(now))

	require.NoError(t, ticket.UnmarkReady(item.ID))
	assert.False(t, item.IsReady)
	assert.Nil(t, item.ReadyAt)

	t.Run("unknown ticket item is not found", func(t *testing.T) {
		assert.Error(t, ticket.MarkReady(uuid.New(), now))
		assert.Error(t, ticket.UnmarkReady(uuid.New()))
	})
}

func TestKdsTicket_BumpAndRecall(t *testing.T) {
	ticket := newActiveTicket(t)
	first := ticket.AddItem(uuid.New(), "Steak", 1, "medium rare", 1)
	ticket.AddItem(uuid.New(), "Fries", 1, "", 1)
	require.NoError(t, ticket.MarkReady(first.ID, time.Now()))

	employeeID := uuid.New()
	now := time.Now()
	require.NoError(t, ticket.Bump(employeeID, now))
	assert.Equal(t, TicketStatusBumped, ticket.Status)
	require.NotNil(t, ticket.BumpedAt)
	require.NotNil(t, ticket.BumpedByEmployeeID)
	assert.Equal(t, employeeID, *ticket.BumpedByEmployeeID)
	assert.Equal(t, ItemStatusBumped, ticket.Items[0].Status)
	assert.Equal(t, ItemStatusBumped, ticket.Items[1].Status)

	t.Run("bumping twice is a silent no-op", func(t *testing.T) {
		ticket.ClearDomainEvents()
		require.NoError(t, ticket.Bump(uuid.New(), now))
		assert.Equal(t, employeeID, *ticket.BumpedByEmployeeID, "second bump does not overwrite")
		assert.Empty(t, ticket.GetDomainEvents())
	})

	t.Run("recall resets every item", func(t *testing.T) {
		require.NoError(t, ticket.Recall())
		assert.Equal(t, TicketStatusActive, ticket.Status)
		assert.True(t, ticket.IsRecalled)
		assert.Nil(t, ticket.BumpedAt)
		assert.Nil(t, ticket.BumpedByEmployeeID)
		for _, item := range ticket.Items {
			assert.Equal(t, ItemStatusPending, item.Status)
			assert.False(t, item.IsReady)
			assert.Nil(t, item.ReadyAt)
		}
	})

	t.Run("recall requires a bumped ticket", func(t *testing.T) {
		assert.Error(t, ticket.Recall())
	})

	t.Run("draft tickets cannot be bumped", func(t *testing.T) {
		draft, err := NewKdsTicket(uuid.New(), uuid.New(), uuid.New(), 1, OrderDineIn, "", true)
		require.NoError(t, err)
		assert.Error(t, draft.Bump(uuid.New(), now))
	})
}

func TestKdsTicket_VoidItem(t *testing.T) {
	ticket := newActiveTicket(t)
	checkItemID := uuid.New()
	item := ticket.AddItem(checkItemID, "Wings", 1, "", 2)
	require.NoError(t, ticket.MarkReady(item.ID, time.Now()))

	voided := ticket.VoidItem(checkItemID)
	assert.Equal(t, 1, voided)
	assert.Equal(t, ItemStatusVoided, item.Status)
	assert.False(t, item.IsReady, "voiding clears readiness")
	assert.Len(t, ticket.Items, 1, "voided items are retained")

	t.Run("voiding again is a no-op", func(t *testing.T) {
		assert.Equal(t, 0, ticket.VoidItem(checkItemID))
	})

	survivor := ticket.AddItem(uuid.New(), "Slaw", 1, "", 2)

	t.Run("bump skips voided items", func(t *testing.T) {
		require.NoError(t, ticket.Bump(uuid.New(), time.Now()))
		assert.Equal(t, ItemStatusVoided, ticket.Items[0].Status)
		assert.Equal(t, ItemStatusBumped, survivor.Status)
	})

	t.Run("recall keeps voided items voided", func(t *testing.T) {
		require.NoError(t, ticket.Recall())
		assert.Equal(t, ItemStatusVoided, ticket.Items[0].Status, "recall never resurrects cancelled work")
		assert.False(t, ticket.Items[0].IsReady)
		assert.Equal(t, ItemStatusPending, survivor.Status, "live items come back as pending")
	})
}

func TestKdsTicket_Activate(t *testing.T) {
	draft, err := NewKdsTicket(uuid.New(), uuid.New(), uuid.New(), 3, OrderDineIn, "", true)
	require.NoError(t, err)

	require.NoError(t, draft.Activate())
	assert.Equal(t, TicketStatusActive, draft.Status)
	assert.False(t, draft.IsPreview)
	require.Len(t, draft.GetDomainEvents(), 1)
	assert.Equal(t, EventTicketCreated, draft.GetDomainEvents()[0].EventType())

	t.Run("activating twice is a no-op", func(t *testing.T) {
		draft.ClearDomainEvents()
		require.NoError(t, draft.Activate())
		assert.Empty(t, draft.GetDomainEvents())
	})

	t.Run("bumped tickets cannot re-activate directly", func(t *testing.T) {
		require.NoError(t, draft.Bump(uuid.New(), time.Now()))
		assert.Error(t, draft.Activate())
	})
}

func TestSortLive(t *testing.T) {
	propertyID := uuid.New()
	displayID := uuid.New()
	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	mk := func(offset time.Duration, recalled bool, status TicketStatus) KdsTicket {
		ticket, err := NewKdsTicket(propertyID, displayID, uuid.New(), 1, OrderDineIn, "", false)
		require.NoError(t, err)
		ticket.CreatedAt = base.Add(offset)
		ticket.IsRecalled = recalled
		ticket.Status = status
		return *ticket
	}

	t1 := mk(1*time.Minute, false, TicketStatusActive)
	t2 := mk(2*time.Minute, true, TicketStatusActive)
	t3 := mk(3*time.Minute, false, TicketStatusActive)

	t.Run("recalled tickets surface first, then oldest", func(t *testing.T) {
		live := SortLive([]KdsTicket{t1, t2, t3})
		require.Len(t, live, 3)
		assert.Equal(t, t2.ID, live[0].ID)
		assert.Equal(t, t1.ID, live[1].ID)
		assert.Equal(t, t3.ID, live[2].ID)
	})

	t.Run("draft and bumped tickets are excluded", func(t *testing.T) {
		draft := mk(0, false, TicketStatusDraft)
		bumped := mk(0, false, TicketStatusBumped)
		live := SortLive([]KdsTicket{draft, t1, bumped})
		require.Len(t, live, 1)
		assert.Equal(t, t1.ID, live[0].ID)
	})

	t.Run("identical timestamps break ties by id", func(t *testing.T) {
		a := mk(0, false, TicketStatusActive)
		b := mk(0, false, TicketStatusActive)
		want := []KdsTicket{a, b}
		if b.ID.String() < a.ID.String() {
			want = []KdsTicket{b, a}
		}
		live := SortLive([]KdsTicket{a, b})
		require.Len(t, live, 2)
		assert.Equal(t, want[0].ID, live[0].ID)
		assert.Equal(t, want[1].ID, live[1].ID)
	})
}
