package realtime

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/printing"
	"github.com/possuite/backend/internal/domain/shared"
)

// TicketStream forwards kitchen and printer domain events to the
// realtime channels. Ticket events go to the owning display's channel;
// liveness and failed-job events go to the property's operator channel.
type TicketStream struct {
	publisher Publisher
	logger    *zap.Logger
}

var _ shared.EventHandler = (*TicketStream)(nil)

// NewTicketStream creates the stream handler
func NewTicketStream(publisher Publisher, logger *zap.Logger) *TicketStream {
	return &TicketStream{publisher: publisher, logger: logger}
}

// EventTypes lists the events the stream forwards
func (s *TicketStream) EventTypes() []string {
	return []string{
		kds.EventTicketCreated,
		kds.EventTicketItemAdded,
		kds.EventTicketItemReady,
		kds.EventTicketItemVoided,
		kds.EventTicketBumped,
		kds.EventTicketRecalled,
		kds.EventTicketPaid,
		hardware.EventPrinterOnline,
		hardware.EventPrinterOffline,
		hardware.EventDisplayOnline,
		hardware.EventDisplayOffline,
		printing.EventPrintJobFailed,
	}
}

// Handle routes one event to its channel
func (s *TicketStream) Handle(ctx context.Context, event shared.DomainEvent) error {
	channel := s.channelFor(event)
	if channel == "" {
		return nil
	}
	payload, err := json.Marshal(streamEnvelope{
		Event: event.EventType(),
		Data:  event,
	})
	if err != nil {
		s.logger.Warn("marshal stream event failed",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return nil
	}
	return s.publisher.Publish(ctx, channel, payload)
}

type streamEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func (s *TicketStream) channelFor(event shared.DomainEvent) string {
	switch evt := event.(type) {
	case *kds.TicketCreatedEvent:
		return DisplayChannel(evt.DisplayID)
	case *kds.TicketItemAddedEvent:
		return DisplayChannel(evt.DisplayID)
	case *kds.TicketItemReadyEvent:
		return DisplayChannel(evt.DisplayID)
	case *kds.TicketItemVoidedEvent:
		return DisplayChannel(evt.DisplayID)
	case *kds.TicketBumpedEvent:
		return DisplayChannel(evt.DisplayID)
	case *kds.TicketRecalledEvent:
		return DisplayChannel(evt.DisplayID)
	case *kds.TicketPaidEvent:
		return DisplayChannel(evt.DisplayID)
	case *hardware.PrinterOnlineEvent, *hardware.PrinterOfflineEvent,
		*hardware.DisplayOnlineEvent, *hardware.DisplayOfflineEvent,
		*printing.PrintJobFailedEvent:
		return PropertyOpsChannel(event.PropertyID())
	default:
		return ""
	}
}
