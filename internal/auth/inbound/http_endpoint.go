package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/laprice/internal/auth/usecase"
	"github.com/shandysiswandi/laprice/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the OTP-gated authentication flow.
type HTTPEndpoint struct {
	uc     uc
	cookie CookieOptions
}

func (h *HTTPEndpoint) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *HTTPEndpoint) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Signup creates an account and signs the caller straight in.
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{
		User:   toUserPayload(resp.User),
		cookie: h.sessionCookie(resp.Token),
	}, nil
}

// Signin verifies credentials and starts the OTP step. The response never
// contains the code itself, only where it was sent.
func (h *HTTPEndpoint) Signin(r *router.Request) (any, error) {
	var req SigninRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signin(r.Context(), usecase.SigninInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	var phone *string
	if resp.SentPhone != "" {
		phone = &resp.SentPhone
	}

	return SigninResponse{
		RequiresOtp: true,
		OtpSentTo:   OtpSentTo{Email: resp.SentEmail, Phone: phone},
		cookie:      h.sessionCookie(resp.Token),
	}, nil
}

// VerifyOtp completes the sign-in by consuming the pending passcode.
func (h *HTTPEndpoint) VerifyOtp(r *router.Request) (any, error) {
	var req VerifyOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOtp(r.Context(), usecase.VerifyOtpInput{Code: req.Otp})
	if err != nil {
		return nil, err
	}

	return VerifyOtpResponse{User: toUserPayload(resp.User)}, nil
}

// ResendOtp reissues the pending passcode.
func (h *HTTPEndpoint) ResendOtp(r *router.Request) (any, error) {
	resp, err := h.uc.ResendOtp(r.Context())
	if err != nil {
		return nil, err
	}

	var phone *string
	if resp.SentPhone != "" {
		phone = &resp.SentPhone
	}

	return ResendOtpResponse{
		OtpSentTo: OtpSentTo{Email: resp.SentEmail, Phone: phone},
	}, nil
}

// Logout clears the caller's session and expires the cookie. Always 200.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{cookie: h.expiredCookie()}, nil
}

// CheckAuth reports the caller's authentication state.
func (h *HTTPEndpoint) CheckAuth(r *router.Request) (any, error) {
	resp, err := h.uc.CheckAuth(r.Context())
	if err != nil {
		return nil, err
	}

	out := CheckAuthResponse{Authenticated: resp.Authenticated}
	if resp.User != nil {
		u := toUserPayload(*resp.User)
		out.User = &u
	}

	return out, nil
}
