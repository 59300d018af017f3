package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
)

// SQLiteScorecardRepo implements ScorecardRepo. Metrics keep their insertion
// order through order_index.
type SQLiteScorecardRepo struct {
	db db.DBTX
}

func NewSQLiteScorecardRepo(conn db.DBTX) *SQLiteScorecardRepo {
	return &SQLiteScorecardRepo{db: conn}
}

// Create inserts the scorecard and its metrics. Run it inside a unit of work
// to make the insert atomic.
func (r *SQLiteScorecardRepo) Create(ctx context.Context, s *domain.Scorecard) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scorecards (id, name, organization, period, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Organization, s.Period, createdAtOrNow(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting scorecard: %w", err)
	}

	for i, m := range s.Metrics {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO scorecard_metrics (id, scorecard_id, perspective, name, unit, current_value, target_value, previous_value, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, s.ID, string(m.Perspective), m.Name, m.Unit,
			m.CurrentValue, m.TargetValue, nullableFloatToValue(m.PreviousValue), i,
		)
		if err != nil {
			return fmt.Errorf("inserting scorecard metric %q: %w", m.Name, err)
		}
	}
	return nil
}

func (r *SQLiteScorecardRepo) GetByID(ctx context.Context, id string) (*domain.Scorecard, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, organization, period, created_at FROM scorecards WHERE id = ?`, id)
	s, err := scanScorecard(row)
	if err != nil {
		return nil, notFound(err, "scorecard", id)
	}
	if s.Metrics, err = r.metrics(ctx, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteScorecardRepo) List(ctx context.Context) ([]*domain.Scorecard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, organization, period, created_at FROM scorecards ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing scorecards: %w", err)
	}

	var scorecards []*domain.Scorecard
	for rows.Next() {
		s, err := scanScorecard(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning scorecard row: %w", err)
		}
		scorecards = append(scorecards, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating scorecards: %w", err)
	}
	// Close before loading metrics: an in-memory store has a single connection.
	rows.Close()

	for _, s := range scorecards {
		if s.Metrics, err = r.metrics(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return scorecards, nil
}

func (r *SQLiteScorecardRepo) metrics(ctx context.Context, scorecardID string) ([]domain.ScorecardMetric, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, scorecard_id, perspective, name, unit, current_value, target_value, previous_value
		FROM scorecard_metrics WHERE scorecard_id = ? ORDER BY order_index`, scorecardID)
	if err != nil {
		return nil, fmt.Errorf("listing scorecard metrics: %w", err)
	}
	defer rows.Close()

	metrics := []domain.ScorecardMetric{}
	for rows.Next() {
		var m domain.ScorecardMetric
		var perspective string
		var previous sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.ScorecardID, &perspective, &m.Name, &m.Unit,
			&m.CurrentValue, &m.TargetValue, &previous); err != nil {
			return nil, fmt.Errorf("scanning scorecard metric: %w", err)
		}
		m.Perspective = domain.Perspective(perspective)
		m.PreviousValue = parseNullableFloat(previous)
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scorecard metrics: %w", err)
	}
	return metrics, nil
}

func scanScorecard(s scanner) (*domain.Scorecard, error) {
	var sc domain.Scorecard
	var createdAt string
	if err := s.Scan(&sc.ID, &sc.Name, &sc.Organization, &sc.Period, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if sc.CreatedAt, err = parseTime(createdAt, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	return &sc, nil
}
