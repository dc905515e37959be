package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
)

// RotatePasscodes deletes every unconsumed passcode of the user and inserts the
// fresh rows, all inside one transaction serialized per user by an advisory
// lock. Concurrent rotations for the same user cannot interleave, so exactly
// one live code per channel survives.
func (s *DB) RotatePasscodes(ctx context.Context, userID int64, codes []entity.NewPasscode) (err error) {
	ctx, span := s.startSpan(ctx, "RotatePasscodes")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return s.mapError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx) //nolint:errcheck // the original error is the root cause
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		err = s.mapError(err)
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM auth_passcodes WHERE user_id = $1 AND NOT consumed`, userID); err != nil {
		err = s.mapError(err)
		return err
	}

	query := `
		INSERT INTO auth_passcodes (id, user_id, code, channel, created_at, expires_at, consumed)
		VALUES ($1, $2, $3, $4, now(), $5, false)`
	for _, c := range codes {
		if _, err = tx.Exec(ctx, query, c.ID, c.UserID, c.Code, c.Channel, c.ExpiresAt); err != nil {
			err = s.mapError(err)
			return err
		}
	}

	err = s.mapError(tx.Commit(ctx))
	return err
}

// ConsumePasscode flips at most one live matching passcode to consumed in a
// single conditional UPDATE, so two racing verifications cannot both succeed
// on the same code. Expiry is a strict inequality: a code expiring exactly now
// is already dead. The sibling channel's row, which carries the same code, is
// left untouched.
func (s *DB) ConsumePasscode(ctx context.Context, userID int64, code string, now time.Time) (ok bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumePasscode")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE auth_passcodes
		SET consumed = true, consumed_at = $3
		WHERE id = (
			SELECT id FROM auth_passcodes
			WHERE user_id = $1 AND code = $2 AND NOT consumed AND expires_at > $3
			ORDER BY id
			LIMIT 1
		) AND NOT consumed AND expires_at > $3`

	tag, err := s.conn.Exec(ctx, query, userID, code, now)
	if err != nil {
		err = s.mapError(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
