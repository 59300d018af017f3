package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
)

// SQLiteInitiativeRepo implements InitiativeRepo.
type SQLiteInitiativeRepo struct {
	db db.DBTX
}

func NewSQLiteInitiativeRepo(conn db.DBTX) *SQLiteInitiativeRepo {
	return &SQLiteInitiativeRepo{db: conn}
}

const initiativeColumns = `id, name, description, sponsor, stage, impacted_groups,
	stage_scores, target_date, created_at`

func (r *SQLiteInitiativeRepo) Create(ctx context.Context, ci *domain.ChangeInitiative) error {
	groups, err := toJSON(ci.ImpactedGroups, "[]")
	if err != nil {
		return fmt.Errorf("encoding impacted groups: %w", err)
	}
	scores, err := toJSON(ci.StageScores, "{}")
	if err != nil {
		return fmt.Errorf("encoding stage scores: %w", err)
	}
	stage := ci.Stage
	if stage == "" {
		stage = domain.StageAwareness
	}

	query := `INSERT INTO change_initiatives (` + initiativeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		ci.ID,
		ci.Name,
		ci.Description,
		ci.Sponsor,
		string(stage),
		groups,
		scores,
		nullableTimeToString(ci.TargetDate, dateLayout),
		createdAtOrNow(ci.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting change initiative: %w", err)
	}
	return nil
}

func (r *SQLiteInitiativeRepo) GetByID(ctx context.Context, id string) (*domain.ChangeInitiative, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+initiativeColumns+` FROM change_initiatives WHERE id = ?`, id)
	ci, err := scanInitiative(row)
	if err != nil {
		return nil, notFound(err, "change initiative", id)
	}
	return ci, nil
}

func (r *SQLiteInitiativeRepo) List(ctx context.Context) ([]*domain.ChangeInitiative, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+initiativeColumns+` FROM change_initiatives ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing change initiatives: %w", err)
	}
	defer rows.Close()

	var initiatives []*domain.ChangeInitiative
	for rows.Next() {
		ci, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning change initiative row: %w", err)
		}
		initiatives = append(initiatives, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change initiatives: %w", err)
	}
	return initiatives, nil
}

func scanInitiative(s scanner) (*domain.ChangeInitiative, error) {
	var ci domain.ChangeInitiative
	var stage, groups, scores, createdAt string
	var targetDate sql.NullString

	if err := s.Scan(
		&ci.ID, &ci.Name, &ci.Description, &ci.Sponsor, &stage,
		&groups, &scores, &targetDate, &createdAt,
	); err != nil {
		return nil, err
	}

	ci.Stage = domain.ADKARStage(stage)
	if err := fromJSON(groups, "impacted_groups", &ci.ImpactedGroups); err != nil {
		return nil, err
	}
	if err := fromJSON(scores, "stage_scores", &ci.StageScores); err != nil {
		return nil, err
	}
	var err error
	if ci.CreatedAt, err = parseTime(createdAt, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	ci.TargetDate = parseNullableTime(targetDate, dateLayout)
	return &ci, nil
}

// SQLiteAllocationRepo implements AllocationRepo.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: conn}
}

const allocationColumns = `id, resource_name, project_name, start_date, end_date,
	hours_per_week, capacity_hours_per_week`

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	capacity := a.CapacityHoursPerWeek
	if capacity <= 0 {
		capacity = 40
	}
	query := `INSERT INTO resource_allocations (` + allocationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ResourceName,
		a.ProjectName,
		a.StartDate.Format(dateLayout),
		a.EndDate.Format(dateLayout),
		a.HoursPerWeek,
		capacity,
	)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) List(ctx context.Context) ([]*domain.Allocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM resource_allocations
		ORDER BY resource_name, start_date, id`)
}

func (r *SQLiteAllocationRepo) ListByResource(ctx context.Context, resourceName string) ([]*domain.Allocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM resource_allocations
		WHERE resource_name = ? ORDER BY start_date, id`, resourceName)
}

func (r *SQLiteAllocationRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Allocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*domain.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning allocation row: %w", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return allocations, nil
}

func scanAllocation(s scanner) (*domain.Allocation, error) {
	var a domain.Allocation
	var start, end string
	if err := s.Scan(
		&a.ID, &a.ResourceName, &a.ProjectName, &start, &end,
		&a.HoursPerWeek, &a.CapacityHoursPerWeek,
	); err != nil {
		return nil, err
	}
	var err error
	if a.StartDate, err = parseTime(start, dateLayout, "start_date"); err != nil {
		return nil, err
	}
	if a.EndDate, err = parseTime(end, dateLayout, "end_date"); err != nil {
		return nil, err
	}
	return &a, nil
}
