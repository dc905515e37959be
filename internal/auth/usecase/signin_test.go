package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

func seedAccount(h *testHarness, phone string) entity.User {
	user := entity.User{
		ID:        42,
		Username:  "member",
		Email:     "member@example.com",
		Phone:     phone,
		Password:  "hashed:supersecret",
		CreatedAt: testNow,
	}
	h.repo.seedUser(user)
	return user
}

func TestSignin(t *testing.T) {
	t.Run("SuccessWithPhone", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		user := seedAccount(h, "+6281234567890")

		// Act
		out, err := h.uc.Signin(context.Background(), SigninInput{Username: "member", Password: "supersecret"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.SentEmail != user.Email || out.SentPhone != user.Phone {
			t.Fatalf("unexpected delivery targets: %q %q", out.SentEmail, out.SentPhone)
		}
		if len(out.Channels) != 2 {
			t.Fatalf("expected email and sms channels, got %v", out.Channels)
		}

		sess, err := h.sessions.Get(context.Background(), out.Token)
		if err != nil {
			t.Fatalf("expected pending session stored, got %v", err)
		}
		if sess.State != session.StatePending {
			t.Fatalf("expected pending session, got %q", sess.State)
		}

		if len(h.repo.rotated) != 1 {
			t.Fatalf("expected one passcode rotation, got %d", len(h.repo.rotated))
		}
		codes := h.repo.rotated[0]
		if len(codes) != 2 {
			t.Fatalf("expected two passcode rows, got %d", len(codes))
		}
		if codes[0].Code != codes[1].Code {
			t.Fatalf("expected the same code on both channels, got %q and %q", codes[0].Code, codes[1].Code)
		}
		if codes[0].Channel != entity.ChannelEmail || codes[1].Channel != entity.ChannelSMS {
			t.Fatalf("unexpected channels: %v %v", codes[0].Channel, codes[1].Channel)
		}
	})

	t.Run("SuccessWithoutPhone", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		seedAccount(h, "")

		// Act
		out, err := h.uc.Signin(context.Background(), SigninInput{Username: "member", Password: "supersecret"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Channels) != 1 || out.Channels[0] != "email" {
			t.Fatalf("expected email-only delivery, got %v", out.Channels)
		}
		if len(h.repo.rotated[0]) != 1 {
			t.Fatalf("expected a single passcode row, got %d", len(h.repo.rotated[0]))
		}
	})

	t.Run("DispatchesCode", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		user := seedAccount(h, "+6281234567890")

		// Act
		_, err := h.uc.Signin(context.Background(), SigninInput{Username: "member", Password: "supersecret"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(h.delivery.sent) != 1 {
			t.Fatalf("expected one delivery, got %d", len(h.delivery.sent))
		}
		if h.delivery.sent[0].userID != user.ID || h.delivery.sent[0].code != "654321" {
			t.Fatalf("unexpected delivery: %+v", h.delivery.sent[0])
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)

		// Act
		_, err := h.uc.Signin(context.Background(), SigninInput{Username: "ghost", Password: "whatever"})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		seedAccount(h, "")

		// Act
		_, err := h.uc.Signin(context.Background(), SigninInput{Username: "member", Password: "wrong"})

		// Assert: indistinguishable from an unknown user.
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Msg() != "invalid username or password" {
			t.Fatalf("expected the uniform credential message, got %v", err)
		}
		if len(h.repo.rotated) != 0 {
			t.Fatalf("expected no passcode rotation on failed signin")
		}
	})

	t.Run("PasscodeGenerationFails", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		seedAccount(h, "")
		h.uc.passcode = failingPasscode{}

		// Act
		_, err := h.uc.Signin(context.Background(), SigninInput{Username: "member", Password: "supersecret"})

		// Assert
		assertBusinessCode(t, err, goerror.CodeInternal)
	})
}
