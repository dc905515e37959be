package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

type SignupInput struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,e164"`
	Password string `validate:"required,password"`
}

type SignupOutput struct {
	User entity.User
	// Token is the opaque session token; the caller turns it into a cookie.
	Token string
}

// Signup creates a user and logs them straight into an authenticated session.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:       s.uid.Generate(),
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: string(hashedPassword),
	}

	if err := s.repoDB.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "signup identity already taken", "username", in.Username)
			return nil, goerror.NewBusiness("username or email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	token := s.oid.Generate()
	if err := s.sessions.Save(ctx, token, session.Session{
		UserID:    newUser.ID,
		State:     session.StateAuthenticated,
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to create session", "user_id", newUser.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserSignup(ctx, UserSignupEvent{
			UserID:   newUser.ID,
			Username: newUser.Username,
			Email:    newUser.Email,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish user signup", "user_id", newUser.ID, "error", err)
		}
		return nil
	})

	return &SignupOutput{
		User: entity.User{
			ID:        newUser.ID,
			Username:  newUser.Username,
			Email:     newUser.Email,
			Phone:     newUser.Phone,
			CreatedAt: s.clock.Now(),
		},
		Token: token,
	}, nil
}
