package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/config"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/goroutine"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
	"github.com/shandysiswandi/laprice/internal/pkg/validator"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

const testConfigYAML = `
modules:
  auth:
    otp_ttl_minutes: 5
`

type fakeRepoDB struct {
	mu        sync.Mutex
	users     map[int64]*entity.User
	byName    map[string]*entity.User
	rotated   [][]entity.NewPasscode
	consumeOK bool

	createErr  error
	rotateErr  error
	consumeErr error
	getErr     error
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		users:  map[int64]*entity.User{},
		byName: map[string]*entity.User{},
	}
}

func (f *fakeRepoDB) seedUser(user entity.User) {
	f.users[user.ID] = &user
	f.byName[user.Username] = &user
}

func (f *fakeRepoDB) CreateUser(_ context.Context, user entity.NewUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byName[user.Username]; ok {
		return goerror.ErrConflict
	}

	created := entity.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Password:  user.Password,
		CreatedAt: testNow,
	}
	f.seedUser(created)
	return nil
}

func (f *fakeRepoDB) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.byName[username]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepoDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepoDB) RotatePasscodes(_ context.Context, _ int64, codes []entity.NewPasscode) error {
	if f.rotateErr != nil {
		return f.rotateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rotated = append(f.rotated, codes)
	return nil
}

func (f *fakeRepoDB) ConsumePasscode(_ context.Context, _ int64, _ string, _ time.Time) (bool, error) {
	if f.consumeErr != nil {
		return false, f.consumeErr
	}
	return f.consumeOK, nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []UserSignupEvent
	err    error
}

func (f *fakeMessaging) PublishUserSignup(_ context.Context, msg UserSignupEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

type deliveredPasscode struct {
	userID   int64
	code     string
	channels []entity.Channel
}

type fakeDelivery struct {
	mu   sync.Mutex
	sent []deliveredPasscode
}

func (f *fakeDelivery) SendPasscode(_ context.Context, user entity.User, code string, _ time.Duration, channels []entity.Channel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, deliveredPasscode{userID: user.ID, code: code, channels: channels})
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
	saveErr  error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]session.Session{}}
}

func (s *memSessionStore) Save(_ context.Context, token string, sess session.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sess
	return nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sess, nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

type fakeHash struct{}

func (fakeHash) Hash(plaintext string) ([]byte, error) { return []byte("hashed:" + plaintext), nil }

func (fakeHash) Verify(hashed, plaintext string) bool { return hashed == "hashed:"+plaintext }

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedStringID struct{ value string }

func (s fixedStringID) Generate() string { return s.value }

type fixedPasscode struct{ code string }

func (p fixedPasscode) Generate() (string, error) { return p.code, nil }

type failingPasscode struct{}

func (failingPasscode) Generate() (string, error) { return "", errors.New("entropy exhausted") }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type testHarness struct {
	uc        *Usecase
	repo      *fakeRepoDB
	messaging *fakeMessaging
	delivery  *fakeDelivery
	sessions  *memSessionStore
	goroutine *goroutine.Manager
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	repo := newFakeRepoDB()
	msg := &fakeMessaging{}
	del := &fakeDelivery{}
	sessions := newMemSessionStore()
	routines := goroutine.NewManager(10)

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		RepoDelivery:  del,
		Sessions:      sessions,
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        fakeHash{},
		UID:           &seqNumberID{},
		OID:           fixedStringID{value: "tok-0001"},
		Passcode:      fixedPasscode{code: "654321"},
		Clock:         fixedClock{now: testNow},
		Instrument:    instrument.NewNoop(),
		Goroutine:     routines,
	})

	return &testHarness{
		uc:        uc,
		repo:      repo,
		messaging: msg,
		delivery:  del,
		sessions:  sessions,
		goroutine: routines,
	}
}

func pendingContext(userID int64, token string) context.Context {
	return session.SetAuth(context.Background(), &session.Auth{
		Token: token,
		Session: session.Session{
			UserID:    userID,
			State:     session.StatePending,
			CreatedAt: testNow,
		},
	})
}

func authenticatedContext(userID int64, token string) context.Context {
	return session.SetAuth(context.Background(), &session.Auth{
		Token: token,
		Session: session.Session{
			UserID:    userID,
			State:     session.StateAuthenticated,
			CreatedAt: testNow,
		},
	})
}

func assertBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror.Error, got %v", err)
	}
	if gerr.Code() != code {
		t.Fatalf("expected code %v, got %v (message %q)", code, gerr.Code(), gerr.Msg())
	}
}
