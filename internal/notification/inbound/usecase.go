package inbound

import (
	"context"

	"github.com/shandysiswandi/laprice/internal/notification/usecase"
)

type uc interface {
	ConsumeUserSignup(ctx context.Context, in usecase.ConsumeUserSignupInput) error
}
