package hardware

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/possuite/backend/internal/domain/shared"
)

func TestNewNetworkPrinter(t *testing.T) {
	propertyID := uuid.New()

	t.Run("valid printer gets defaults", func(t *testing.T) {
		p, err := NewNetworkPrinter(propertyID, "Grill Printer", "192.168.1.50", 0)
		require.NoError(t, err)
		assert.Equal(t, ConnectionNetwork, p.Connection)
		assert.Equal(t, DefaultNetworkPort, p.Port)
		assert.Equal(t, DefaultCharWidth, p.CharWidth)
		assert.Equal(t, DefaultMaxAttempts, p.MaxAttempts)
		assert.True(t, p.Active)
		assert.False(t, p.IsOnline)
	})

	t.Run("requires address", func(t *testing.T) {
		_, err := NewNetworkPrinter(propertyID, "Grill", "  ", 9100)
		assert.Error(t, err)
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewNetworkPrinter(propertyID, "", "192.168.1.50", 9100)
		assert.Error(t, err)
	})
}

func TestNewLocalPrinter(t *testing.T) {
	propertyID := uuid.New()

	t.Run("serial printer", func(t *testing.T) {
		p, err := NewLocalPrinter(propertyID, "Bar Printer", ConnectionSerial, "/dev/ttyUSB0")
		require.NoError(t, err)
		assert.True(t, p.Connection.IsLocal())
		assert.Equal(t, "/dev/ttyUSB0", p.DevicePath)
	})

	t.Run("rejects network kind", func(t *testing.T) {
		_, err := NewLocalPrinter(propertyID, "Bar", ConnectionNetwork, "/dev/ttyUSB0")
		assert.Error(t, err)
	})

	t.Run("requires device path", func(t *testing.T) {
		_, err := NewLocalPrinter(propertyID, "Bar", ConnectionUSB, "")
		assert.Error(t, err)
	})
}

func TestPrinter_Liveness(t *testing.T) {
	p, err := NewNetworkPrinter(uuid.New(), "Expo", "10.0.0.9", 9100)
	require.NoError(t, err)

	now := time.Now()
	p.MarkOnline(now)
	assert.True(t, p.IsOnline)
	require.NotNil(t, p.LastSeenAt)
	assert.True(t, p.LastSeenAt.Equal(now))
	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventPrinterOnline, p.GetDomainEvents()[0].EventType())
	p.ClearDomainEvents()

	// staying online does not re-fire the event
	p.MarkOnline(now.Add(time.Second))
	assert.Empty(t, p.GetDomainEvents())

	p.MarkOffline()
	assert.False(t, p.IsOnline)
	assert.NotNil(t, p.LastSeenAt, "offline keeps the last contact timestamp")
	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventPrinterOffline, p.GetDomainEvents()[0].EventType())
	p.ClearDomainEvents()

	p.MarkOffline()
	assert.Empty(t, p.GetDomainEvents())
}

func TestPrinter_Settings(t *testing.T) {
	p, err := NewNetworkPrinter(uuid.New(), "Expo", "10.0.0.9", 9100)
	require.NoError(t, err)

	assert.Error(t, p.SetCharWidth(10))
	assert.NoError(t, p.SetCharWidth(48))
	assert.Equal(t, 48, p.CharWidth)

	assert.Error(t, p.SetMaxAttempts(0))
	assert.NoError(t, p.SetMaxAttempts(5))
	assert.Equal(t, 5, p.MaxAttempts)
}

func TestOrderDevice_Links(t *testing.T) {
	propertyID := uuid.New()
	device, err := NewOrderDevice(propertyID, "Grill")
	require.NoError(t, err)

	printer, err := NewNetworkPrinter(propertyID, "Grill Printer", "10.0.0.1", 9100)
	require.NoError(t, err)
	display, err := NewKitchenDisplay(propertyID, "Grill KDS", StationHot)
	require.NoError(t, err)

	t.Run("same-property links succeed", func(t *testing.T) {
		require.NoError(t, device.AttachPrinter(printer, 1))
		require.NoError(t, device.AttachDisplay(display, 1))
	})

	t.Run("duplicate link rejected", func(t *testing.T) {
		err := device.AttachPrinter(printer, 2)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("cross-property link rejected", func(t *testing.T) {
		foreign, err := NewNetworkPrinter(uuid.New(), "Other", "10.0.0.2", 9100)
		require.NoError(t, err)
		assert.ErrorIs(t, device.AttachPrinter(foreign, 1), shared.ErrCrossProperty)

		foreignKds, err := NewKitchenDisplay(uuid.New(), "Other KDS", StationCold)
		require.NoError(t, err)
		assert.ErrorIs(t, device.AttachDisplay(foreignKds, 1), shared.ErrCrossProperty)
	})

	t.Run("ordered IDs follow link position", func(t *testing.T) {
		second, err := NewNetworkPrinter(propertyID, "Backup", "10.0.0.3", 9100)
		require.NoError(t, err)
		require.NoError(t, device.AttachPrinter(second, 0))
		ids := device.OrderedPrinterIDs()
		require.Len(t, ids, 2)
		assert.Equal(t, second.ID, ids[0])
		assert.Equal(t, printer.ID, ids[1])
	})

	t.Run("detach removes the link", func(t *testing.T) {
		device.DetachDisplay(display.ID)
		assert.Empty(t, device.OrderedDisplayIDs())
		device.DetachDisplay(display.ID) // no-op
	})
}

func TestKitchenDisplay_Thresholds(t *testing.T) {
	d, err := NewKitchenDisplay(uuid.New(), "Expo KDS", StationExpo)
	require.NoError(t, err)
	assert.Equal(t, DefaultWarningAfterSec, d.WarningAfterSec)

	assert.Error(t, d.SetAlertThresholds(0, 600))
	assert.Error(t, d.SetAlertThresholds(600, 300))
	require.NoError(t, d.SetAlertThresholds(120, 240))
	assert.Equal(t, 120, d.WarningAfterSec)
	assert.Equal(t, 240, d.CriticalAfterSec)

	t.Run("rejects unknown station kind", func(t *testing.T) {
		_, err := NewKitchenDisplay(uuid.New(), "X", StationKind("fryer"))
		assert.Error(t, err)
	})
}

func TestKitchenDisplay_Heartbeat(t *testing.T) {
	d, err := NewKitchenDisplay(uuid.New(), "Hot KDS", StationHot)
	require.NoError(t, err)

	now := time.Now()
	d.Heartbeat(now)
	assert.True(t, d.IsOnline)
	require.NotNil(t, d.LastSeenAt)
	assert.True(t, d.LastSeenAt.Equal(now))

	d.MarkOffline()
	assert.False(t, d.IsOnline)
	assert.NotNil(t, d.LastSeenAt)
}
