package service

import (
	"context"

	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/events"
	"medical-triage-be/pkg/nats"
)

const (
	alertSubject = "events.triage.emergency"
	alertDurable = "triage-alert-listener"
)

type IAlertService interface {
	Listen(ctx context.Context) error
}

// alertService is the emergency-alert worker: it drains emergency
// events off the NATS stream and writes them through an isolated file
// logger, mirroring the audit consumer on the in-process bus.
type alertService struct {
	subscriber  *nats.Subscriber
	alertLogger logger.ILogger
}

func NewAlertService(subscriber *nats.Subscriber, alertLogger logger.ILogger) IAlertService {
	return &alertService{
		subscriber:  subscriber,
		alertLogger: alertLogger,
	}
}

// Listen attaches the durable consumer. A nil subscriber (NATS down at
// startup) degrades to a no-op; alerts are still in the audit trail.
func (as *alertService) Listen(ctx context.Context) error {
	if as.subscriber == nil {
		return nil
	}
	return as.subscriber.Subscribe(alertSubject, alertDurable, as.handleEvent)
}

func (as *alertService) handleEvent(ctx context.Context, event events.Event) error {
	as.alertLogger.Error("alert", "emergency case routed", event.Payload())
	return nil
}
