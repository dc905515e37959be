package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS auth_users (
    id          BIGINT PRIMARY KEY,
    username    TEXT NOT NULL,
    email       TEXT NOT NULL,
    phone       TEXT,
    password    TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS auth_users_username_key ON auth_users (username);
CREATE UNIQUE INDEX IF NOT EXISTS auth_users_email_key ON auth_users (email);

CREATE TABLE IF NOT EXISTS auth_passcodes (
    id          BIGINT PRIMARY KEY,
    user_id     BIGINT NOT NULL REFERENCES auth_users (id) ON DELETE CASCADE,
    code        TEXT NOT NULL,
    channel     SMALLINT NOT NULL,
    consumed    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    expires_at  TIMESTAMPTZ NOT NULL,
    consumed_at TIMESTAMPTZ
);
`

func setupDB(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("laprice_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("5432/tcp")).WithStartupTimeout(60*time.Second),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	uri, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return NewDB(pool, instrument.NewNoop())
}

func seedUser(t *testing.T, store *DB, id int64, username, phone string) {
	t.Helper()

	err := store.CreateUser(context.Background(), entity.NewUser{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Phone:    phone,
		Password: "hashed",
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

func TestUserQueries(t *testing.T) {
	// Arrange
	store := setupDB(t)
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		// Act
		seedUser(t, store, 1, "alice", "+6281234567890")
		byName, errName := store.GetUserByUsername(ctx, "alice")
		byID, errID := store.GetUserByID(ctx, 1)

		// Assert
		if errName != nil || errID != nil {
			t.Fatalf("get user: %v %v", errName, errID)
		}
		if byName.ID != 1 || byID.Username != "alice" {
			t.Fatalf("unexpected rows: %+v %+v", byName, byID)
		}
		if byName.Phone != "+6281234567890" {
			t.Fatalf("expected phone roundtrip, got %q", byName.Phone)
		}
	})

	t.Run("EmptyPhoneStoredAsNull", func(t *testing.T) {
		// Act
		seedUser(t, store, 2, "bob", "")
		user, err := store.GetUserByUsername(ctx, "bob")

		// Assert
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if user.Phone != "" {
			t.Fatalf("expected empty phone, got %q", user.Phone)
		}
	})

	t.Run("DuplicateUsernameConflicts", func(t *testing.T) {
		// Act
		err := store.CreateUser(ctx, entity.NewUser{
			ID:       3,
			Username: "alice",
			Email:    "other@example.com",
			Password: "hashed",
		})

		// Assert
		if !errors.Is(err, goerror.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("UnknownUserNotFound", func(t *testing.T) {
		// Act
		_, errName := store.GetUserByUsername(ctx, "nobody")
		_, errID := store.GetUserByID(ctx, 999)

		// Assert
		if !errors.Is(errName, goerror.ErrNotFound) || !errors.Is(errID, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v %v", errName, errID)
		}
	})
}

func TestPasscodeLifecycle(t *testing.T) {
	// Arrange
	store := setupDB(t)
	ctx := context.Background()
	seedUser(t, store, 10, "carol", "+6289876543210")
	now := time.Now().UTC()

	rotate := func(t *testing.T, firstID int64, code string, expiresAt time.Time) {
		t.Helper()
		err := store.RotatePasscodes(ctx, 10, []entity.NewPasscode{
			{ID: firstID, UserID: 10, Code: code, Channel: entity.ChannelEmail, ExpiresAt: expiresAt},
			{ID: firstID + 1, UserID: 10, Code: code, Channel: entity.ChannelSMS, ExpiresAt: expiresAt},
		})
		if err != nil {
			t.Fatalf("rotate passcodes: %v", err)
		}
	}

	t.Run("ConsumeLiveCode", func(t *testing.T) {
		// Arrange
		rotate(t, 100, "111111", now.Add(5*time.Minute))

		// Act
		ok, err := store.ConsumePasscode(ctx, 10, "111111", now)

		// Assert
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if !ok {
			t.Fatalf("expected code to be consumed")
		}
	})

	t.Run("SiblingChannelRowStaysLive", func(t *testing.T) {
		// The first consume took one of the two rows carrying the code; the
		// other row is still live and consumable.

		// Act
		ok, err := store.ConsumePasscode(ctx, 10, "111111", now)

		// Assert
		if err != nil {
			t.Fatalf("consume sibling: %v", err)
		}
		if !ok {
			t.Fatalf("expected the sibling row to remain consumable")
		}

		// A third attempt finds no live row.
		ok, err = store.ConsumePasscode(ctx, 10, "111111", now)
		if err != nil {
			t.Fatalf("consume exhausted: %v", err)
		}
		if ok {
			t.Fatalf("expected no live rows left")
		}
	})

	t.Run("RotationInvalidatesPreviousCode", func(t *testing.T) {
		// Arrange
		rotate(t, 200, "222222", now.Add(5*time.Minute))
		rotate(t, 300, "333333", now.Add(5*time.Minute))

		// Act
		okOld, errOld := store.ConsumePasscode(ctx, 10, "222222", now)
		okNew, errNew := store.ConsumePasscode(ctx, 10, "333333", now)

		// Assert
		if errOld != nil || errNew != nil {
			t.Fatalf("consume: %v %v", errOld, errNew)
		}
		if okOld {
			t.Fatalf("expected the rotated-out code to be dead")
		}
		if !okNew {
			t.Fatalf("expected the fresh code to be live")
		}
	})

	t.Run("ExpiredCodeRejected", func(t *testing.T) {
		// Arrange
		rotate(t, 400, "444444", now.Add(5*time.Minute))

		// Act: verify as if the TTL has already passed.
		ok, err := store.ConsumePasscode(ctx, 10, "444444", now.Add(10*time.Minute))

		// Assert
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if ok {
			t.Fatalf("expected expired code to be rejected")
		}
	})

	t.Run("ExpiryBoundaryIsStrict", func(t *testing.T) {
		// Arrange
		expiresAt := now.Add(5 * time.Minute)
		rotate(t, 500, "555555", expiresAt)

		// Act: verification at the exact expiry instant.
		ok, err := store.ConsumePasscode(ctx, 10, "555555", expiresAt)

		// Assert
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if ok {
			t.Fatalf("expected a code expiring exactly now to be dead")
		}
	})

	t.Run("WrongCodeRejected", func(t *testing.T) {
		// Arrange
		rotate(t, 600, "666666", now.Add(5*time.Minute))

		// Act
		ok, err := store.ConsumePasscode(ctx, 10, "999999", now)

		// Assert
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if ok {
			t.Fatalf("expected a mismatched code to be rejected")
		}
	})

	t.Run("ConsumedRowsSurviveRotation", func(t *testing.T) {
		// Arrange: consume the live code, then rotate again.
		ok, err := store.ConsumePasscode(ctx, 10, "666666", now)
		if err != nil || !ok {
			t.Fatalf("consume setup: ok=%v err=%v", ok, err)
		}
		rotate(t, 700, "777777", now.Add(5*time.Minute))

		// Act: the consumed row is part of the audit trail, not the live set,
		// so the new rotation must not have resurrected the old code.
		okOld, err := store.ConsumePasscode(ctx, 10, "666666", now)

		// Assert
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if okOld {
			t.Fatalf("expected consumed code to stay dead after rotation")
		}
	})

	t.Run("ConcurrentRotationsLeaveOneLiveCodePerChannel", func(t *testing.T) {
		// Arrange
		const workers = 8
		var wg sync.WaitGroup
		errs := make([]error, workers)

		// Act: racing rotations for one user serialize on the advisory lock,
		// so the last writer's pair is the only live set.
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				base := int64(1000 + i*2)
				code := fmt.Sprintf("8%05d", i)
				errs[i] = store.RotatePasscodes(ctx, 10, []entity.NewPasscode{
					{ID: base, UserID: 10, Code: code, Channel: entity.ChannelEmail, ExpiresAt: now.Add(5 * time.Minute)},
					{ID: base + 1, UserID: 10, Code: code, Channel: entity.ChannelSMS, ExpiresAt: now.Add(5 * time.Minute)},
				})
			}()
		}
		wg.Wait()

		// Assert
		for i, err := range errs {
			if err != nil {
				t.Fatalf("rotation %d: %v", i, err)
			}
		}

		rows, err := store.conn.Query(ctx,
			`SELECT channel, count(*) FROM auth_passcodes WHERE user_id = $1 AND NOT consumed GROUP BY channel`, int64(10))
		if err != nil {
			t.Fatalf("count live rows: %v", err)
		}
		defer rows.Close()

		live := map[entity.Channel]int64{}
		for rows.Next() {
			var channel int16
			var count int64
			if err := rows.Scan(&channel, &count); err != nil {
				t.Fatalf("scan live rows: %v", err)
			}
			live[entity.Channel(channel)] = count
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("iterate live rows: %v", err)
		}

		if live[entity.ChannelEmail] != 1 || live[entity.ChannelSMS] != 1 {
			t.Fatalf("expected exactly one live row per channel, got %v", live)
		}
	})
}
