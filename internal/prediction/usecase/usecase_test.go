package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/goroutine"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/predictor"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
	"github.com/shandysiswandi/laprice/internal/pkg/validator"
	"github.com/shandysiswandi/laprice/internal/prediction/entity"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

const testArtifact = `{
	"brands": {"Acer": 0, "Asus": 1, "Dell": 2, "HP": 3, "Lenovo": 4},
	"scaler_mean": [2.0, 2.5, 16, 512, 14.5, 2.0],
	"scaler_scale": [1.4, 0.7, 10, 300, 1.5, 0.5],
	"coefficients": [10.0, 200.0, 300.0, 150.0, 50.0, -20.0],
	"intercept": 20000.0
}`

type fakeRepoDB struct {
	mu        sync.Mutex
	rows      []entity.NewPrediction
	stored    []entity.Prediction
	createErr error
	listErr   error
}

func (f *fakeRepoDB) CreatePrediction(_ context.Context, p entity.NewPrediction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakeRepoDB) GetPredictionsByUserID(_ context.Context, userID int64) ([]entity.Prediction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Prediction, 0)
	for _, p := range f.stored {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []PredictionCreatedEvent
}

func (f *fakeMessaging) PublishPredictionCreated(_ context.Context, msg PredictionCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type testHarness struct {
	uc        *Usecase
	repo      *fakeRepoDB
	messaging *fakeMessaging
	predictor *predictor.Predictor
	goroutine *goroutine.Manager
}

func newTestHarness(t *testing.T, artifact string) *testHarness {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	pred := predictor.New(func(context.Context) ([]byte, error) {
		if artifact == "" {
			return nil, errors.New("artifact missing")
		}
		return []byte(artifact), nil
	})
	if artifact != "" {
		if err := pred.Load(context.Background()); err != nil {
			t.Fatalf("load model: %v", err)
		}
	}

	repo := &fakeRepoDB{}
	msg := &fakeMessaging{}
	routines := goroutine.NewManager(10)

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		Predictor:     pred,
		Validator:     v10,
		UID:           &seqNumberID{},
		Clock:         fixedClock{now: testNow},
		Instrument:    instrument.NewNoop(),
		Goroutine:     routines,
	})

	return &testHarness{uc: uc, repo: repo, messaging: msg, predictor: pred, goroutine: routines}
}

func authenticatedContext(userID int64) context.Context {
	return session.SetAuth(context.Background(), &session.Auth{
		Token: "tok-auth",
		Session: session.Session{
			UserID:    userID,
			State:     session.StateAuthenticated,
			CreatedAt: testNow,
		},
	})
}

func assertCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror.Error, got %v", err)
	}
	if gerr.Code() != code {
		t.Fatalf("expected code %v, got %v (message %q)", code, gerr.Code(), gerr.Msg())
	}
}
