package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-triage-be/pkg/events"
)

type capturingLogger struct {
	module  string
	message string
	details map[string]interface{}
	calls   int
}

func (l *capturingLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *capturingLogger) Info(module, message string, details map[string]interface{})  {}
func (l *capturingLogger) Warn(module, message string, details map[string]interface{})  {}
func (l *capturingLogger) Error(module, message string, details map[string]interface{}) {
	l.module, l.message, l.details = module, message, details
	l.calls++
}
func (l *capturingLogger) Sync() error { return nil }

func TestAlertListenNoopWithoutSubscriber(t *testing.T) {
	svc := NewAlertService(nil, &capturingLogger{})
	assert.NoError(t, svc.Listen(context.Background()))
}

func TestAlertHandlerWritesEmergencyRecord(t *testing.T) {
	log := &capturingLogger{}
	svc := NewAlertService(nil, log).(*alertService)

	evt := events.NewTriageEmergency("sess-9", "HIGH", "CALL 911 NOW")
	require.NoError(t, svc.handleEvent(context.Background(), evt))

	assert.Equal(t, 1, log.calls)
	assert.Equal(t, "alert", log.module)
	assert.Equal(t, "sess-9", log.details["session_id"])
	assert.Equal(t, "HIGH", log.details["severity"])
}
