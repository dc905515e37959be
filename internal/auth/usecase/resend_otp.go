package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
)

type ResendOtpOutput struct {
	SentEmail string
	SentPhone string
	Channels  []string
}

// ResendOtp reissues the pending user's passcode through the same
// rotate-then-dispatch sequence as signin, without re-checking the password.
// The previous code becomes unusable even though it has not expired.
func (s *Usecase) ResendOtp(ctx context.Context) (*ResendOtpOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendOtp")
	defer span.End()

	auth, err := s.pendingAuth(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByID(ctx, auth.Session.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", auth.Session.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	channels, err := s.mintPasscodes(ctx, user)
	if err != nil {
		return nil, err
	}

	return &ResendOtpOutput{
		SentEmail: user.Email,
		SentPhone: user.Phone,
		Channels:  lo.Map(channels, func(c entity.Channel, _ int) string { return c.String() }),
	}, nil
}
