package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/laprice/internal/auth/usecase"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/messaging"
	"github.com/shandysiswandi/laprice/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserSignup(ctx context.Context, msg usecase.UserSignupEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishUserSignup")
	defer span.End()

	body, err := json.Marshal(event.UserSignupMessage{
		UserID:   msg.UserID,
		Username: msg.Username,
		Email:    msg.Email,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if err := m.client.Publish(ctx, event.UserSignupDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
