package inbound

import (
	"context"
	"time"

	"github.com/shandysiswandi/laprice/internal/auth/usecase"
	"github.com/shandysiswandi/laprice/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	Signin(ctx context.Context, in usecase.SigninInput) (*usecase.SigninOutput, error)
	VerifyOtp(ctx context.Context, in usecase.VerifyOtpInput) (*usecase.VerifyOtpOutput, error)
	ResendOtp(ctx context.Context) (*usecase.ResendOtpOutput, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (*usecase.CheckAuthOutput, error)
}

// CookieOptions describes the session cookie handed to the browser.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cookie CookieOptions) {
	end := &HTTPEndpoint{uc: uc, cookie: cookie}

	r.POST("/api/v1/auth/signup", end.Signup)
	r.POST("/api/v1/auth/signin", end.Signin)
	r.POST("/api/v1/auth/verify-otp", end.VerifyOtp)
	r.POST("/api/v1/auth/resend-otp", end.ResendOtp)
	r.POST("/api/v1/auth/logout", end.Logout)
	r.GET("/api/v1/auth/check-auth", end.CheckAuth)
}
