package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/domain/printing"
	"github.com/possuite/backend/internal/domain/routing"
	"github.com/possuite/backend/internal/domain/shared"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&ordering.Property{},
		&ordering.RevenueCenter{},
		&ordering.MenuItem{},
		&ordering.Check{},
		&ordering.CheckItem{},
		&ordering.ItemModifier{},
		&ordering.Payment{},
		&hardware.Printer{},
		&hardware.KitchenDisplay{},
		&hardware.OrderDevice{},
		&hardware.PrinterLink{},
		&hardware.DisplayLink{},
		&routing.PrintClass{},
		&routing.PrintClassRoute{},
		&printing.PrintJob{},
		&kds.KdsTicket{},
		&kds.KdsTicketItem{},
	))

	return db
}

func TestPrintJobRepository_FindDue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPrintJobRepository(db)
	ctx := context.Background()

	propertyID := uuid.New()
	printerID := uuid.New()
	base := time.Now().Add(-time.Minute)

	newJob := func(priority int, offset time.Duration) *printing.PrintJob {
		job, err := printing.NewPrintJob(propertyID, printerID, printing.JobTypeReceipt, []byte{0x1b, 0x40}, "hello", priority, 3)
		require.NoError(t, err)
		job.CreatedAt = base.Add(offset)
		require.NoError(t, repo.Save(ctx, job))
		return job
	}

	normalOld := newJob(printing.PriorityNormal, 0)
	highNew := newJob(printing.PriorityHigh, 2*time.Second)
	normalNew := newJob(printing.PriorityNormal, 4*time.Second)
	lowOld := newJob(printing.PriorityLow, 1*time.Second)

	// completed jobs are never due
	done := newJob(printing.PriorityHigh, 3*time.Second)
	require.NoError(t, done.StartAttempt())
	require.NoError(t, done.CompleteDelivery(time.Now()))
	require.NoError(t, repo.Save(ctx, done))

	due, err := repo.FindDue(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 4)
	assert.Equal(t, highNew.ID, due[0].ID, "priority wins over age")
	assert.Equal(t, normalOld.ID, due[1].ID, "ties break on creation time")
	assert.Equal(t, normalNew.ID, due[2].ID)
	assert.Equal(t, lowOld.ID, due[3].ID)

	t.Run("limit caps the batch", func(t *testing.T) {
		due, err := repo.FindDue(ctx, 2)
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, highNew.ID, due[0].ID)
	})
}

func TestPrintJobRepository_CountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPrintJobRepository(db)
	ctx := context.Background()

	propertyID := uuid.New()
	printerID := uuid.New()

	for i := 0; i < 3; i++ {
		job, err := printing.NewPrintJob(propertyID, printerID, printing.JobTypeReceipt, []byte{0x0a}, "x", 0, 3)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, job))
	}
	failed, err := printing.NewPrintJob(propertyID, printerID, printing.JobTypeKitchenTicket, []byte{0x0a}, "x", 0, 1)
	require.NoError(t, err)
	require.NoError(t, failed.StartAttempt())
	_, err = failed.FailAttempt("connection refused")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, failed))

	// other properties do not leak into the overview
	other, err := printing.NewPrintJob(uuid.New(), printerID, printing.JobTypeReceipt, []byte{0x0a}, "x", 0, 3)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	counts, err := repo.CountByStatus(ctx, propertyID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[printing.JobStatusPending])
	assert.Equal(t, int64(1), counts[printing.JobStatusFailed])
	assert.Zero(t, counts[printing.JobStatusCompleted])
}

func TestPrintJobRepository_FindByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPrintJobRepository(db)
	ctx := context.Background()

	propertyID := uuid.New()
	printerID := uuid.New()
	job, err := printing.NewPrintJob(propertyID, printerID, printing.JobTypeReceipt, []byte{0x0a}, "x", 0, 3)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, job))

	jobs, err := repo.FindByStatus(ctx, propertyID, printing.JobStatusPending, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.ID, jobs[0].ID)

	jobs, err = repo.FindByPrinter(ctx, printerID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestKdsTicketRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormKdsTicketRepository(db)
	ctx := context.Background()

	propertyID := uuid.New()
	displayID := uuid.New()
	checkID := uuid.New()
	sharedItemID := uuid.New()

	active, err := kds.NewKdsTicket(propertyID, displayID, checkID, 42, kds.OrderDineIn, "T7", false)
	require.NoError(t, err)
	activeItem := active.AddItem(sharedItemID, "BURGER", 2, "No Onions", 3)
	require.NoError(t, repo.Save(ctx, active))

	bumped, err := kds.NewKdsTicket(propertyID, displayID, checkID, 42, kds.OrderDineIn, "T7", false)
	require.NoError(t, err)
	bumped.AddItem(sharedItemID, "BURGER", 2, "", 0)
	require.NoError(t, bumped.Bump(uuid.New(), time.Now()))
	require.NoError(t, repo.Save(ctx, bumped))

	otherDisplay, err := kds.NewKdsTicket(propertyID, uuid.New(), checkID, 42, kds.OrderDineIn, "T7", false)
	require.NoError(t, err)
	otherDisplay.AddItem(uuid.New(), "FRIES", 1, "", 0)
	require.NoError(t, repo.Save(ctx, otherDisplay))

	t.Run("live excludes bumped and other displays", func(t *testing.T) {
		live, err := repo.FindLiveByDisplay(ctx, displayID)
		require.NoError(t, err)
		require.Len(t, live, 1)
		assert.Equal(t, active.ID, live[0].ID)
		require.Len(t, live[0].Items, 1, "items are loaded with the ticket")
		assert.Equal(t, "BURGER", live[0].Items[0].Name)
	})

	t.Run("find by check item spans tickets", func(t *testing.T) {
		tickets, err := repo.FindByCheckItem(ctx, sharedItemID)
		require.NoError(t, err)
		assert.Len(t, tickets, 2)
	})

	t.Run("open by check and display skips bumped", func(t *testing.T) {
		ticket, err := repo.FindOpenByCheckAndDisplay(ctx, checkID, displayID)
		require.NoError(t, err)
		assert.Equal(t, active.ID, ticket.ID)

		_, err = repo.FindOpenByCheckAndDisplay(ctx, checkID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by ticket item", func(t *testing.T) {
		ticket, err := repo.FindByTicketItem(ctx, activeItem.ID)
		require.NoError(t, err)
		assert.Equal(t, active.ID, ticket.ID)

		_, err = repo.FindByTicketItem(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("item state survives a round trip", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, active.ID)
		require.NoError(t, err)
		require.NoError(t, loaded.MarkReady(activeItem.ID, time.Now()))
		require.NoError(t, repo.Save(ctx, loaded))

		reloaded, err := repo.FindByID(ctx, active.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Items, 1)
		assert.True(t, reloaded.Items[0].IsReady)
	})
}

func TestCheckRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCheckRepository(db)
	ctx := context.Background()

	propertyID := uuid.New()
	rvcID := uuid.New()

	menuItem, err := ordering.NewMenuItem(propertyID, "Cheeseburger", "1001", decimal.RequireFromString("4.99"))
	require.NoError(t, err)

	check, err := ordering.NewCheck(propertyID, rvcID, uuid.New(), 101, "Alice", "2026-08-23")
	require.NoError(t, err)
	mods := []ordering.ItemModifier{{BaseEntity: shared.NewBaseEntity(), Name: "No Onions"}}
	item, err := check.AddItem(menuItem, 2, 3, mods)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, check))

	t.Run("find by item id", func(t *testing.T) {
		found, err := repo.FindByItemID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, check.ID, found.ID)
		require.Len(t, found.Items, 1)
		require.Len(t, found.Items[0].Modifiers, 1)
		assert.Equal(t, "No Onions", found.Items[0].Modifiers[0].Name)

		_, err = repo.FindByItemID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, propertyID, "2026-08-23", 101)
		require.NoError(t, err)
		assert.Equal(t, check.ID, found.ID)

		_, err = repo.FindByNumber(ctx, propertyID, "2026-08-24", 101)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("open by rvc excludes closed", func(t *testing.T) {
		open, err := repo.FindOpenByRvc(ctx, rvcID)
		require.NoError(t, err)
		require.Len(t, open, 1)

		require.NoError(t, check.AddPayment(ordering.TenderCash, check.Total, decimal.Zero, ""))
		require.NoError(t, check.Close())
		require.NoError(t, repo.Save(ctx, check))

		open, err = repo.FindOpenByRvc(ctx, rvcID)
		require.NoError(t, err)
		assert.Empty(t, open)
	})
}

func TestPropertyRepository_FindByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)
	ctx := context.Background()

	property, err := ordering.NewProperty("Harbor Grill", "HG1", "America/New_York", "USD")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, property))

	found, err := repo.FindByCode(ctx, "HG1")
	require.NoError(t, err)
	assert.Equal(t, property.ID, found.ID)
	assert.Equal(t, "America/New_York", found.Timezone)

	_, err = repo.FindByCode(ctx, "ZZ9")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderDeviceRepository_SaveReplacesLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderDeviceRepository(db)
	ctx := context.Background()

	propertyID := uuid.New()
	printer, err := hardware.NewNetworkPrinter(propertyID, "Grill Printer", "10.0.0.1", 9100)
	require.NoError(t, err)

	device, err := hardware.NewOrderDevice(propertyID, "Grill")
	require.NoError(t, err)
	require.NoError(t, device.AttachPrinter(printer, 0))
	require.NoError(t, repo.Save(ctx, device))

	loaded, err := repo.FindByID(ctx, device.ID)
	require.NoError(t, err)
	require.Len(t, loaded.PrinterLinks, 1)

	loaded.DetachPrinter(printer.ID)
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, device.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.PrinterLinks, "detached links do not linger")
}
