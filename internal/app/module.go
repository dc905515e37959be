package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/laprice/internal/auth"
	"github.com/shandysiswandi/laprice/internal/notification"
	"github.com/shandysiswandi/laprice/internal/prediction"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			DBConn:     a.dbConn,
			Sessions:   a.sessions,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Messaging:  a.messaging,
			Mail:       a.mail,
			SMS:        a.sms,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			OID:        a.oid,
			Bcrypt:     a.bcrypt,
			Passcode:   a.passcode,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.prediction.enabled") {
		if err := prediction.New(prediction.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Predictor:  a.predictor,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Goroutine:  a.goroutine,
		}); err != nil {
			slog.Error("failed to init module prediction", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
