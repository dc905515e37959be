package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
)

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UserPayload struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserPayload(u entity.User) UserPayload {
	var phone *string
	if u.HasPhone() {
		phone = &u.Phone
	}

	return UserPayload{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     phone,
		CreatedAt: u.CreatedAt,
	}
}

type SignupResponse struct {
	User UserPayload `json:"user"`

	cookie *http.Cookie
}

func (SignupResponse) StatusCode() int {
	return http.StatusCreated
}

func (SignupResponse) Message() string {
	return "Account created successfully."
}

func (r SignupResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookie}
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type OtpSentTo struct {
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type SigninResponse struct {
	RequiresOtp bool      `json:"requires_otp"`
	OtpSentTo   OtpSentTo `json:"otp_sent_to"`

	cookie *http.Cookie
}

func (SigninResponse) Message() string {
	return "A verification code has been sent."
}

func (r SigninResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookie}
}

type VerifyOtpRequest struct {
	Otp string `json:"otp"`
}

type VerifyOtpResponse struct {
	User UserPayload `json:"user"`
}

func (VerifyOtpResponse) Message() string {
	return "OTP verified successfully."
}

type ResendOtpResponse struct {
	OtpSentTo OtpSentTo `json:"otp_sent_to"`
}

func (ResendOtpResponse) Message() string {
	return "A new verification code has been sent."
}

type LogoutResponse struct {
	cookie *http.Cookie
}

func (LogoutResponse) Message() string {
	return "Logged out successfully."
}

func (r LogoutResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookie}
}

type CheckAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *UserPayload `json:"user,omitempty"`
}
