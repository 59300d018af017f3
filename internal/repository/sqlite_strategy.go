package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
)

// SQLiteCanvasRepo implements CanvasRepo. Blocks are stored as one JSON object
// keyed by block name.
type SQLiteCanvasRepo struct {
	db db.DBTX
}

func NewSQLiteCanvasRepo(conn db.DBTX) *SQLiteCanvasRepo {
	return &SQLiteCanvasRepo{db: conn}
}

const canvasColumns = `id, name, description, blocks, created_at`

func (r *SQLiteCanvasRepo) Create(ctx context.Context, c *domain.Canvas) error {
	blocks, err := toJSON(c.Blocks, "{}")
	if err != nil {
		return fmt.Errorf("encoding canvas blocks: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO canvases (`+canvasColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, blocks, createdAtOrNow(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting canvas: %w", err)
	}
	return nil
}

func (r *SQLiteCanvasRepo) GetByID(ctx context.Context, id string) (*domain.Canvas, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+canvasColumns+` FROM canvases WHERE id = ?`, id)
	c, err := scanCanvas(row)
	if err != nil {
		return nil, notFound(err, "canvas", id)
	}
	return c, nil
}

func (r *SQLiteCanvasRepo) List(ctx context.Context) ([]*domain.Canvas, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+canvasColumns+` FROM canvases ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing canvases: %w", err)
	}
	defer rows.Close()

	var canvases []*domain.Canvas
	for rows.Next() {
		c, err := scanCanvas(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning canvas row: %w", err)
		}
		canvases = append(canvases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating canvases: %w", err)
	}
	return canvases, nil
}

func scanCanvas(s scanner) (*domain.Canvas, error) {
	var c domain.Canvas
	var blocks, createdAt string
	if err := s.Scan(&c.ID, &c.Name, &c.Description, &blocks, &createdAt); err != nil {
		return nil, err
	}
	if err := fromJSON(blocks, "blocks", &c.Blocks); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}

// SQLiteCompetitiveAnalysisRepo implements CompetitiveAnalysisRepo.
type SQLiteCompetitiveAnalysisRepo struct {
	db db.DBTX
}

func NewSQLiteCompetitiveAnalysisRepo(conn db.DBTX) *SQLiteCompetitiveAnalysisRepo {
	return &SQLiteCompetitiveAnalysisRepo{db: conn}
}

const analysisColumns = `id, company, industry, competitors, forces, notes, created_at`

func (r *SQLiteCompetitiveAnalysisRepo) Create(ctx context.Context, ca *domain.CompetitiveAnalysis) error {
	competitors, err := toJSON(ca.Competitors, "[]")
	if err != nil {
		return fmt.Errorf("encoding competitors: %w", err)
	}
	forces, err := toJSON(ca.Forces, "{}")
	if err != nil {
		return fmt.Errorf("encoding forces: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO competitive_analyses (`+analysisColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ca.ID, ca.Company, ca.Industry, competitors, forces, ca.Notes, createdAtOrNow(ca.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting competitive analysis: %w", err)
	}
	return nil
}

func (r *SQLiteCompetitiveAnalysisRepo) GetByID(ctx context.Context, id string) (*domain.CompetitiveAnalysis, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM competitive_analyses WHERE id = ?`, id)
	ca, err := scanCompetitiveAnalysis(row)
	if err != nil {
		return nil, notFound(err, "competitive analysis", id)
	}
	return ca, nil
}

func (r *SQLiteCompetitiveAnalysisRepo) List(ctx context.Context) ([]*domain.CompetitiveAnalysis, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+analysisColumns+` FROM competitive_analyses ORDER BY company, id`)
	if err != nil {
		return nil, fmt.Errorf("listing competitive analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*domain.CompetitiveAnalysis
	for rows.Next() {
		ca, err := scanCompetitiveAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning competitive analysis row: %w", err)
		}
		analyses = append(analyses, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating competitive analyses: %w", err)
	}
	return analyses, nil
}

func scanCompetitiveAnalysis(s scanner) (*domain.CompetitiveAnalysis, error) {
	var ca domain.CompetitiveAnalysis
	var competitors, forces, createdAt string
	if err := s.Scan(&ca.ID, &ca.Company, &ca.Industry, &competitors, &forces, &ca.Notes, &createdAt); err != nil {
		return nil, err
	}
	if err := fromJSON(competitors, "competitors", &ca.Competitors); err != nil {
		return nil, err
	}
	if err := fromJSON(forces, "forces", &ca.Forces); err != nil {
		return nil, err
	}
	var err error
	if ca.CreatedAt, err = parseTime(createdAt, time.RFC3339, "created_at"); err != nil {
		return nil, err
	}
	return &ca, nil
}
