package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/laprice/internal/pkg/clock"
	"github.com/shandysiswandi/laprice/internal/pkg/config"
	"github.com/shandysiswandi/laprice/internal/pkg/goroutine"
	"github.com/shandysiswandi/laprice/internal/pkg/hash"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/mail"
	"github.com/shandysiswandi/laprice/internal/pkg/messaging"
	"github.com/shandysiswandi/laprice/internal/pkg/passcode"
	"github.com/shandysiswandi/laprice/internal/pkg/predictor"
	"github.com/shandysiswandi/laprice/internal/pkg/router"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
	"github.com/shandysiswandi/laprice/internal/pkg/sms"
	"github.com/shandysiswandi/laprice/internal/pkg/storage"
	"github.com/shandysiswandi/laprice/internal/pkg/uid"
	"github.com/shandysiswandi/laprice/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	passcode  passcode.Generator

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	sessions  session.Store
	mail      mail.Mail
	sms       sms.Sender
	messaging messaging.Messaging
	storage   storage.Storage
	predictor *predictor.Predictor

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initStorage()
	app.initPredictor()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
