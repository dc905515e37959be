package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/laprice/internal/notification/usecase"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/messaging"
	"github.com/shandysiswandi/laprice/internal/pkg/uid"
	"github.com/shandysiswandi/laprice/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserSignupNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserSignupNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user signup notification", "msg_body", string(body))

	var payload event.UserSignupMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user signup notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserSignup(ctx, usecase.ConsumeUserSignupInput{
		UserID:   payload.UserID,
		Username: payload.Username,
		Email:    payload.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user signup", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
