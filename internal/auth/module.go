package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/laprice/internal/auth/inbound"
	"github.com/shandysiswandi/laprice/internal/auth/outbound/db"
	"github.com/shandysiswandi/laprice/internal/auth/outbound/delivery"
	"github.com/shandysiswandi/laprice/internal/auth/outbound/mq"
	"github.com/shandysiswandi/laprice/internal/auth/usecase"
	"github.com/shandysiswandi/laprice/internal/pkg/clock"
	"github.com/shandysiswandi/laprice/internal/pkg/config"
	"github.com/shandysiswandi/laprice/internal/pkg/goroutine"
	"github.com/shandysiswandi/laprice/internal/pkg/hash"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/mail"
	"github.com/shandysiswandi/laprice/internal/pkg/messaging"
	"github.com/shandysiswandi/laprice/internal/pkg/passcode"
	"github.com/shandysiswandi/laprice/internal/pkg/router"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
	"github.com/shandysiswandi/laprice/internal/pkg/sms"
	"github.com/shandysiswandi/laprice/internal/pkg/uid"
	"github.com/shandysiswandi/laprice/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Sessions   session.Store              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	SMS        sms.Sender                 `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	OID        uid.StringID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Passcode   passcode.Generator         `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)
	repoDelivery := delivery.NewDelivery(
		dep.Mail,
		dep.SMS,
		dep.Config.GetSecond("modules.auth.delivery_timeout_seconds"),
		dep.Instrument,
	)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		RepoDelivery:  repoDelivery,
		Sessions:      dep.Sessions,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		OID:           dep.OID,
		Passcode:      dep.Passcode,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.CookieOptions{
		Name:   dep.Config.GetString("app.server.session.cookie_name"),
		TTL:    dep.Config.GetMinute("app.server.session.ttl_minutes"),
		Secure: dep.Config.GetBool("app.server.session.cookie_secure"),
	})

	return nil
}
