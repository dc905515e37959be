package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

func TestSignup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		in := SignupInput{
			Username: "newuser",
			Email:    "New.User@Example.com",
			Phone:    "+6281234567890",
			Password: "supersecret",
		}

		// Act
		out, err := h.uc.Signup(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Token == "" {
			t.Fatalf("expected a session token")
		}
		if out.User.Email != "new.user@example.com" {
			t.Fatalf("expected lowercased email, got %q", out.User.Email)
		}

		stored := h.repo.byName["newuser"]
		if stored.Password == in.Password {
			t.Fatalf("expected the stored credential to be a hash, got the plaintext password")
		}
		if stored.Password != "hashed:"+in.Password {
			t.Fatalf("unexpected stored credential %q", stored.Password)
		}

		sess, err := h.sessions.Get(context.Background(), out.Token)
		if err != nil {
			t.Fatalf("expected session stored, got %v", err)
		}
		if sess.State != session.StateAuthenticated {
			t.Fatalf("expected authenticated session, got %q", sess.State)
		}
		if sess.UserID != out.User.ID {
			t.Fatalf("expected session bound to user %d, got %d", out.User.ID, sess.UserID)
		}
	})

	t.Run("PublishesSignupEvent", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		in := SignupInput{Username: "eventuser", Email: "event@example.com", Password: "supersecret"}

		// Act
		out, err := h.uc.Signup(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := h.goroutine.Wait(); err != nil {
			t.Fatalf("background publish failed: %v", err)
		}
		if len(h.messaging.events) != 1 {
			t.Fatalf("expected 1 signup event, got %d", len(h.messaging.events))
		}
		if h.messaging.events[0].UserID != out.User.ID {
			t.Fatalf("expected event for user %d, got %d", out.User.ID, h.messaging.events[0].UserID)
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		first := SignupInput{Username: "taken", Email: "first@example.com", Password: "supersecret"}
		if _, err := h.uc.Signup(context.Background(), first); err != nil {
			t.Fatalf("seed signup failed: %v", err)
		}

		// Act
		_, err := h.uc.Signup(context.Background(), SignupInput{
			Username: "taken",
			Email:    "second@example.com",
			Password: "supersecret",
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeConflict)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		in := SignupInput{Username: "x", Email: "not-an-email", Password: "123"}

		// Act
		_, err := h.uc.Signup(context.Background(), in)

		// Assert
		assertBusinessCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		in := SignupInput{
			Username: "phoneuser",
			Email:    "phone@example.com",
			Phone:    "081234",
			Password: "supersecret",
		}

		// Act
		_, err := h.uc.Signup(context.Background(), in)

		// Assert
		assertBusinessCode(t, err, goerror.CodeInvalidInput)
	})
}
