package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shandysiswandi/laprice/internal/pkg/config"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/mail"
	"github.com/shandysiswandi/laprice/internal/pkg/validator"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeMailer) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: Laprice\n"))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	mailer := &fakeMailer{}
	uc := New(Dependency{
		RepoMail:   mailer,
		Config:     cfg,
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})

	return uc, mailer
}

func TestConsumeUserSignup(t *testing.T) {
	t.Run("SendsWelcomeEmail", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)
		in := ConsumeUserSignupInput{UserID: 1, Username: "alice", Email: "alice@example.com"}

		// Act
		err := uc.ConsumeUserSignup(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(mailer.sent))
		}
		msg := mailer.sent[0]
		if msg.To[0] != "alice@example.com" {
			t.Fatalf("unexpected recipient %v", msg.To)
		}
		if !strings.Contains(msg.Subject, "Laprice") {
			t.Fatalf("expected app name in subject, got %q", msg.Subject)
		}
		if !strings.Contains(msg.TextBody, "alice") {
			t.Fatalf("expected username in body")
		}
	})

	t.Run("MalformedEventIsDropped", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)
		in := ConsumeUserSignupInput{UserID: 0, Username: "", Email: "broken"}

		// Act
		err := uc.ConsumeUserSignup(context.Background(), in)

		// Assert: nil keeps the broker from redelivering a hopeless event.
		if err != nil {
			t.Fatalf("expected no error for malformed event, got %v", err)
		}
		if len(mailer.sent) != 0 {
			t.Fatalf("expected no email for malformed event")
		}
	})

	t.Run("SendFailureRequestsRedelivery", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)
		mailer.err = errors.New("smtp down")
		in := ConsumeUserSignupInput{UserID: 1, Username: "alice", Email: "alice@example.com"}

		// Act
		err := uc.ConsumeUserSignup(context.Background(), in)

		// Assert
		if err == nil {
			t.Fatalf("expected error to trigger redelivery")
		}
	})
}
