package db

import (
	"context"

	"github.com/shandysiswandi/laprice/internal/prediction/entity"
)

func (s *DB) CreatePrediction(ctx context.Context, p entity.NewPrediction) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePrediction")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO predictions
			(id, user_id, brand, processor_speed, ram_size, storage_capacity,
			 screen_size, weight, predicted_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`

	_, err = s.conn.Exec(ctx, query,
		p.ID, p.UserID, p.Brand, p.ProcessorSpeed, p.RAMSize,
		p.StorageCapacity, p.ScreenSize, p.Weight, p.PredictedPrice)
	err = s.mapError(err)
	return err
}

func (s *DB) GetPredictionsByUserID(ctx context.Context, userID int64) (out []entity.Prediction, err error) {
	ctx, span := s.startSpan(ctx, "GetPredictionsByUserID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, user_id, brand, processor_speed, ram_size, storage_capacity,
		       screen_size, weight, predicted_price, created_at
		FROM predictions
		WHERE user_id = $1
		ORDER BY id DESC`

	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	out = make([]entity.Prediction, 0)
	for rows.Next() {
		var p entity.Prediction
		if err = rows.Scan(&p.ID, &p.UserID, &p.Brand, &p.ProcessorSpeed, &p.RAMSize,
			&p.StorageCapacity, &p.ScreenSize, &p.Weight, &p.PredictedPrice, &p.CreatedAt); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		out = append(out, p)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return out, nil
}
