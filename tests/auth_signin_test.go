package tests

import (
	"net/http"
	"testing"
)

type signinData struct {
	RequiresOtp bool `json:"requires_otp"`
	OtpSentTo   struct {
		Email string  `json:"email"`
		Phone *string `json:"phone"`
	} `json:"otp_sent_to"`
}

func TestSignin(t *testing.T) {
	t.Run("StartsPendingSession", func(t *testing.T) {
		// Arrange
		username := uniqueName("signin")
		signup(t, newAPIClient(t), username, username+"@example.com", "", "supersecret")
		c := newAPIClient(t)

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/auth/signin", map[string]string{
			"username": username,
			"password": "supersecret",
		})

		// Assert
		if status != http.StatusOK {
			t.Fatalf("signin returned %d: %s", status, body)
		}
		var data signinData
		decodeSuccess(t, body, &data)
		if !data.RequiresOtp {
			t.Fatalf("expected requires_otp")
		}
		if data.OtpSentTo.Email == "" {
			t.Fatalf("expected email delivery target")
		}

		// A pending session is not authenticated yet.
		status, body = c.doJSON(t, http.MethodGet, "/api/v1/auth/check-auth", nil)
		if status != http.StatusOK {
			t.Fatalf("check-auth returned %d: %s", status, body)
		}
		var check checkAuthData
		decodeSuccess(t, body, &check)
		if check.Authenticated {
			t.Fatalf("expected pending session to be unauthenticated")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		username := uniqueName("wrongpw")
		signup(t, newAPIClient(t), username, username+"@example.com", "", "supersecret")
		c := newAPIClient(t)

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/auth/signin", map[string]string{
			"username": username,
			"password": "not-the-password",
		})

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", status, body)
		}
	})

	t.Run("UnknownUserLooksTheSame", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/auth/signin", map[string]string{
			"username": uniqueName("ghost"),
			"password": "whatever",
		})

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", status, body)
		}
		env := decodeError(t, body)
		if env.Message != "invalid username or password" {
			t.Fatalf("expected the uniform credential message, got %q", env.Message)
		}
	})
}

func TestOtpGate(t *testing.T) {
	t.Run("WrongOtpKeepsPending", func(t *testing.T) {
		// Arrange
		username := uniqueName("otp")
		signup(t, newAPIClient(t), username, username+"@example.com", "", "supersecret")
		c := newAPIClient(t)
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/auth/signin", map[string]string{
			"username": username,
			"password": "supersecret",
		})
		if status != http.StatusOK {
			t.Fatalf("signin returned %d: %s", status, body)
		}

		// Act: "000000" is below the generator's range, so it never matches.
		status, body = c.doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{"otp": "000000"})

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", status, body)
		}

		// The pending session survives, so resend still works.
		status, body = c.doJSON(t, http.MethodPost, "/api/v1/auth/resend-otp", nil)
		if status != http.StatusOK {
			t.Fatalf("resend-otp returned %d: %s", status, body)
		}
	})

	t.Run("VerifyWithoutPendingSession", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{"otp": "123456"})

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", status, body)
		}
	})

	t.Run("ResendWithoutPendingSession", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/auth/resend-otp", nil)

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", status, body)
		}
	})
}

func TestLogout(t *testing.T) {
	t.Run("ClearsSession", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)
		username := uniqueName("logout")
		signup(t, c, username, username+"@example.com", "", "supersecret")

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/auth/logout", nil)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("logout returned %d: %s", status, body)
		}

		status, body = c.doJSON(t, http.MethodGet, "/api/v1/auth/check-auth", nil)
		if status != http.StatusOK {
			t.Fatalf("check-auth returned %d: %s", status, body)
		}
		var check checkAuthData
		decodeSuccess(t, body, &check)
		if check.Authenticated {
			t.Fatalf("expected logged-out session to be unauthenticated")
		}
	})

	t.Run("LogoutWithoutSession", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)

		// Act
		status, _ := c.doJSON(t, http.MethodPost, "/api/v1/auth/logout", nil)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("expected logout to always succeed, got %d", status)
		}
	})
}
