package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/clock"
	"github.com/shandysiswandi/laprice/internal/pkg/config"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/goroutine"
	"github.com/shandysiswandi/laprice/internal/pkg/hash"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/passcode"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
	"github.com/shandysiswandi/laprice/internal/pkg/uid"
	"github.com/shandysiswandi/laprice/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserSignupEvent struct {
	UserID   int64
	Username string
	Email    string
}

type repoMessaging interface {
	PublishUserSignup(ctx context.Context, msg UserSignupEvent) error
}

type repoDB interface {
	CreateUser(ctx context.Context, user entity.NewUser) error
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	// RotatePasscodes atomically replaces all unconsumed passcodes of the user
	// with the given fresh rows.
	RotatePasscodes(ctx context.Context, userID int64, codes []entity.NewPasscode) error
	// ConsumePasscode marks at most one matching live passcode consumed and
	// reports whether it did.
	ConsumePasscode(ctx context.Context, userID int64, code string, now time.Time) (bool, error)
}

// repoDelivery dispatches a minted passcode. It never fails the calling flow;
// the passcode row is already authoritative in storage.
type repoDelivery interface {
	SendPasscode(ctx context.Context, user entity.User, code string, expiresIn time.Duration, channels []entity.Channel)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoDelivery  repoDelivery
	sessions      session.Store
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	uid           uid.NumberID
	oid           uid.StringID
	passcode      passcode.Generator
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoDelivery  repoDelivery
	Sessions      session.Store
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	UID           uid.NumberID
	OID           uid.StringID
	Passcode      passcode.Generator
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoDelivery:  dep.RepoDelivery,
		sessions:      dep.Sessions,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		oid:           dep.OID,
		passcode:      dep.Passcode,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// pendingAuth returns the caller's pending sign-in session, or an error when
// there is no sign-in to complete.
func (s *Usecase) pendingAuth(ctx context.Context) (*session.Auth, error) {
	auth := session.GetAuth(ctx)
	if auth == nil || auth.Session.State != session.StatePending {
		slog.WarnContext(ctx, "passcode operation without a pending sign-in")
		return nil, goerror.NewBusiness("no pending authentication", goerror.CodeUnauthorized)
	}

	return auth, nil
}

// mintPasscodes rotates the user's passcodes and dispatches the fresh code,
// returning the channels the code was sent to. Shared by signin and resend.
func (s *Usecase) mintPasscodes(ctx context.Context, user *entity.User) ([]entity.Channel, error) {
	code, err := s.passcode.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
	expiresAt := s.clock.Now().Add(ttl)

	// One code is shared across every delivery channel.
	codes := []entity.NewPasscode{{
		ID:        s.uid.Generate(),
		UserID:    user.ID,
		Code:      code,
		Channel:   entity.ChannelEmail,
		ExpiresAt: expiresAt,
	}}
	if user.HasPhone() {
		codes = append(codes, entity.NewPasscode{
			ID:        s.uid.Generate(),
			UserID:    user.ID,
			Code:      code,
			Channel:   entity.ChannelSMS,
			ExpiresAt: expiresAt,
		})
	}

	if err := s.repoDB.RotatePasscodes(ctx, user.ID, codes); err != nil {
		slog.ErrorContext(ctx, "failed to repo rotate passcodes", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	channels := make([]entity.Channel, 0, len(codes))
	for _, c := range codes {
		channels = append(channels, c.Channel)
	}

	// Delivery failures are handled inside the collaborator; the passcode rows
	// are already persisted so the flow reports success regardless.
	s.repoDelivery.SendPasscode(ctx, *user, code, ttl, channels)

	return channels, nil
}
