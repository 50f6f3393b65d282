package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"medical-triage-be/internal/dto"
	"medical-triage-be/internal/pkg/logger"
	"medical-triage-be/pkg/events"
	"medical-triage-be/pkg/nats"
	"medical-triage-be/pkg/triage"
)

const (
	disclaimerDefault   = "This is an educational AI system. Always consult real medical professionals."
	disclaimerEmergency = "This is an educational system. For real emergencies, call emergency services immediately!"
	disclaimerFiltered  = "This system is designed for medical symptom assessment only."
)

type ITriageService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type triageService struct {
	orchestrator *triage.Orchestrator
	publisher    IPublisherService
	natsPub      *nats.Publisher
	logger       logger.ILogger
}

func NewTriageService(
	orchestrator *triage.Orchestrator,
	publisher IPublisherService,
	natsPub *nats.Publisher,
	log logger.ILogger,
) ITriageService {
	return &triageService{
		orchestrator: orchestrator,
		publisher:    publisher,
		natsPub:      natsPub,
		logger:       log,
	}
}

func (s *triageService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("empty symptom text")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()[:8]
	}

	// Obvious non-medical text skips the pipeline entirely.
	if triage.IsObviouslyNonMedical(text) {
		s.logger.Info("triage", "non-medical input filtered before pipeline", map[string]interface{}{
			"session_id": sessionID,
		})
		return &dto.ChatResponse{
			SessionID:  sessionID,
			Reply:      triage.Responders()[triage.RouteNonMedical].Render(sessionID, text, nil),
			Route:      string(triage.RouteNonMedical),
			Emergency:  false,
			Sources:    []dto.SourceRef{},
			Disclaimer: disclaimerFiltered,
		}, nil
	}

	result := s.orchestrator.Process(ctx, sessionID, text)
	if !result.Success {
		return nil, fmt.Errorf("triage pipeline unavailable for session %s", sessionID)
	}

	s.publishAudit(ctx, result)
	if result.Emergency {
		s.publishEmergencyAlert(ctx, result)
	}

	sources := make([]dto.SourceRef, 0, len(result.Sources))
	for _, c := range result.Sources {
		sources = append(sources, dto.SourceRef{
			Name:  c.SourceName,
			URL:   c.SourceURL,
			Score: c.Score,
		})
	}

	disclaimer := disclaimerDefault
	if result.Emergency {
		disclaimer = disclaimerEmergency
	}

	return &dto.ChatResponse{
		SessionID:  result.SessionID,
		Reply:      result.Reply,
		Route:      string(result.Route),
		Emergency:  result.Emergency,
		Sources:    sources,
		Disclaimer: disclaimer,
	}, nil
}

// publishAudit feeds the in-process audit consumer. Auditing is
// auxiliary; a publish failure never fails the request.
func (s *triageService) publishAudit(ctx context.Context, result *triage.Response) {
	if s.publisher == nil {
		return
	}

	evt := events.NewTriageCompleted(
		result.SessionID,
		string(result.Route),
		result.Severity,
		result.Emergency,
		result.Fallback,
	)

	body := evt.Payload()
	body["occurred_at"] = evt.Timestamp()
	payload, err := json.Marshal(body)
	if err != nil {
		s.logger.Warn("triage", "failed to marshal audit message", map[string]interface{}{
			"session_id": result.SessionID,
			"error":      err.Error(),
		})
		return
	}

	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("triage", "failed to publish audit message", map[string]interface{}{
			"session_id": result.SessionID,
			"error":      err.Error(),
		})
	}
}

func (s *triageService) publishEmergencyAlert(ctx context.Context, result *triage.Response) {
	if s.natsPub == nil {
		return
	}

	evt := events.NewTriageEmergency(result.SessionID, result.Severity, result.Reply)
	if err := s.natsPub.Publish(ctx, evt); err != nil {
		s.logger.Warn("triage", "failed to publish emergency alert", map[string]interface{}{
			"session_id": result.SessionID,
			"error":      err.Error(),
		})
	}
}
