package hardware

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainhardware "github.com/possuite/backend/internal/domain/hardware"
)

// DeviceService owns the administrative device surface: printers,
// kitchen displays, and the order devices that group them into routing
// targets.
type DeviceService struct {
	printers     domainhardware.PrinterRepository
	displays     domainhardware.KitchenDisplayRepository
	orderDevices domainhardware.OrderDeviceRepository
	logger       *zap.Logger
}

// NewDeviceService creates the device management service
func NewDeviceService(
	printers domainhardware.PrinterRepository,
	displays domainhardware.KitchenDisplayRepository,
	orderDevices domainhardware.OrderDeviceRepository,
	logger *zap.Logger,
) *DeviceService {
	return &DeviceService{
		printers:     printers,
		displays:     displays,
		orderDevices: orderDevices,
		logger:       logger,
	}
}

// CreateNetworkPrinter registers a printer reached over raw TCP
func (s *DeviceService) CreateNetworkPrinter(ctx context.Context, propertyID uuid.UUID, name, address string, port int) (*domainhardware.Printer, error) {
	printer, err := domainhardware.NewNetworkPrinter(propertyID, name, address, port)
	if err != nil {
		return nil, err
	}
	if err := s.printers.Save(ctx, printer); err != nil {
		return nil, err
	}
	s.logger.Info("printer registered",
		zap.String("printer_id", printer.ID.String()),
		zap.String("name", printer.Name),
		zap.String("connection", printer.Connection.String()))
	return printer, nil
}

// CreateLocalPrinter registers a serial- or USB-attached printer served
// by the property's print agent.
func (s *DeviceService) CreateLocalPrinter(ctx context.Context, propertyID uuid.UUID, name string, connection domainhardware.ConnectionKind, devicePath string) (*domainhardware.Printer, error) {
	printer, err := domainhardware.NewLocalPrinter(propertyID, name, connection, devicePath)
	if err != nil {
		return nil, err
	}
	if err := s.printers.Save(ctx, printer); err != nil {
		return nil, err
	}
	s.logger.Info("printer registered",
		zap.String("printer_id", printer.ID.String()),
		zap.String("name", printer.Name),
		zap.String("connection", printer.Connection.String()))
	return printer, nil
}

// ConfigurePrinter updates the printer's rendering width and retry
// bound. Zero values leave the current setting unchanged.
func (s *DeviceService) ConfigurePrinter(ctx context.Context, printerID uuid.UUID, charWidth, maxAttempts int) (*domainhardware.Printer, error) {
	printer, err := s.printers.FindByID(ctx, printerID)
	if err != nil {
		return nil, err
	}
	if charWidth > 0 {
		if err := printer.SetCharWidth(charWidth); err != nil {
			return nil, err
		}
	}
	if maxAttempts > 0 {
		if err := printer.SetMaxAttempts(maxAttempts); err != nil {
			return nil, err
		}
	}
	if err := s.printers.Save(ctx, printer); err != nil {
		return nil, err
	}
	return printer, nil
}

// SetPrinterActive toggles the printer's participation in routing
func (s *DeviceService) SetPrinterActive(ctx context.Context, printerID uuid.UUID, active bool) error {
	printer, err := s.printers.FindByID(ctx, printerID)
	if err != nil {
		return err
	}
	if active {
		printer.Activate()
	} else {
		printer.Deactivate()
	}
	return s.printers.Save(ctx, printer)
}

// CreateKitchenDisplay registers a kitchen display station
func (s *DeviceService) CreateKitchenDisplay(ctx context.Context, propertyID uuid.UUID, name string, station domainhardware.StationKind) (*domainhardware.KitchenDisplay, error) {
	display, err := domainhardware.NewKitchenDisplay(propertyID, name, station)
	if err != nil {
		return nil, err
	}
	if err := s.displays.Save(ctx, display); err != nil {
		return nil, err
	}
	s.logger.Info("kitchen display registered",
		zap.String("display_id", display.ID.String()),
		zap.String("name", display.Name),
		zap.String("station", display.Station.String()))
	return display, nil
}

// SetDisplayAlertThresholds configures ticket age alerting for a station
func (s *DeviceService) SetDisplayAlertThresholds(ctx context.Context, displayID uuid.UUID, warningSec, criticalSec int) error {
	display, err := s.displays.FindByID(ctx, displayID)
	if err != nil {
		return err
	}
	if err := display.SetAlertThresholds(warningSec, criticalSec); err != nil {
		return err
	}
	return s.displays.Save(ctx, display)
}

// SetDisplayShowDrafts toggles dynamic order mode on a display
func (s *DeviceService) SetDisplayShowDrafts(ctx context.Context, displayID uuid.UUID, enabled bool) error {
	display, err := s.displays.FindByID(ctx, displayID)
	if err != nil {
		return err
	}
	display.SetShowDrafts(enabled)
	return s.displays.Save(ctx, display)
}

// CreateOrderDevice registers a named routing target
func (s *DeviceService) CreateOrderDevice(ctx context.Context, propertyID uuid.UUID, name string) (*domainhardware.OrderDevice, error) {
	device, err := domainhardware.NewOrderDevice(propertyID, name)
	if err != nil {
		return nil, err
	}
	if err := s.orderDevices.Save(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// AttachPrinter links a printer to an order device. Cross-property
// links are rejected here, at configuration time.
func (s *DeviceService) AttachPrinter(ctx context.Context, orderDeviceID, printerID uuid.UUID, position int) error {
	device, err := s.orderDevices.FindByID(ctx, orderDeviceID)
	if err != nil {
		return err
	}
	printer, err := s.printers.FindByID(ctx, printerID)
	if err != nil {
		return err
	}
	if err := device.AttachPrinter(printer, position); err != nil {
		return err
	}
	return s.orderDevices.Save(ctx, device)
}

// AttachDisplay links a kitchen display to an order device
func (s *DeviceService) AttachDisplay(ctx context.Context, orderDeviceID, displayID uuid.UUID, position int) error {
	device, err := s.orderDevices.FindByID(ctx, orderDeviceID)
	if err != nil {
		return err
	}
	display, err := s.displays.FindByID(ctx, displayID)
	if err != nil {
		return err
	}
	if err := device.AttachDisplay(display, position); err != nil {
		return err
	}
	return s.orderDevices.Save(ctx, device)
}

// DetachPrinter removes a printer link from an order device
func (s *DeviceService) DetachPrinter(ctx context.Context, orderDeviceID, printerID uuid.UUID) error {
	device, err := s.orderDevices.FindByID(ctx, orderDeviceID)
	if err != nil {
		return err
	}
	device.DetachPrinter(printerID)
	return s.orderDevices.Save(ctx, device)
}

// DetachDisplay removes a display link from an order device
func (s *DeviceService) DetachDisplay(ctx context.Context, orderDeviceID, displayID uuid.UUID) error {
	device, err := s.orderDevices.FindByID(ctx, orderDeviceID)
	if err != nil {
		return err
	}
	device.DetachDisplay(displayID)
	return s.orderDevices.Save(ctx, device)
}

// ListPrinters returns a property's printers
func (s *DeviceService) ListPrinters(ctx context.Context, propertyID uuid.UUID) ([]domainhardware.Printer, error) {
	return s.printers.FindByProperty(ctx, propertyID)
}

// ListDisplays returns a property's kitchen displays
func (s *DeviceService) ListDisplays(ctx context.Context, propertyID uuid.UUID) ([]domainhardware.KitchenDisplay, error) {
	return s.displays.FindByProperty(ctx, propertyID)
}

// ListOrderDevices returns a property's order devices
func (s *DeviceService) ListOrderDevices(ctx context.Context, propertyID uuid.UUID) ([]domainhardware.OrderDevice, error) {
	return s.orderDevices.FindByProperty(ctx, propertyID)
}

// GetPrinter returns one printer
func (s *DeviceService) GetPrinter(ctx context.Context, printerID uuid.UUID) (*domainhardware.Printer, error) {
	return s.printers.FindByID(ctx, printerID)
}
