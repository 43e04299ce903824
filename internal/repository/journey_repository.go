package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

// JourneyRepository provides database access for stages and tasks.
type JourneyRepository struct {
	db *sqlx.DB
}

func NewJourneyRepository(db *sqlx.DB) *JourneyRepository {
	return &JourneyRepository{db: db}
}

// ListActiveStages returns active journey stages in journey order.
func (r *JourneyRepository) ListActiveStages(ctx context.Context) ([]models.JourneyStage, error) {
	const query = `SELECT id, name, stage_order, is_active, created_at FROM journey_stages WHERE is_active = true ORDER BY stage_order ASC`
	var stages []models.JourneyStage
	if err := r.db.SelectContext(ctx, &stages, query); err != nil {
		return nil, fmt.Errorf("list active stages: %w", err)
	}
	return stages, nil
}

// FindStageByName resolves a stage by its display name. Session completions
// map session types onto stages by name.
func (r *JourneyRepository) FindStageByName(ctx context.Context, name string) (*models.JourneyStage, error) {
	const query = `SELECT id, name, stage_order, is_active, created_at FROM journey_stages WHERE name = $1`
	var stage models.JourneyStage
	if err := r.db.GetContext(ctx, &stage, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStageNotFound
		}
		return nil, fmt.Errorf("find stage by name: %w", err)
	}
	return &stage, nil
}

// ListTasks returns all tasks in stage and task order.
func (r *JourneyRepository) ListTasks(ctx context.Context) ([]models.Task, error) {
	const query = `
		SELECT t.id, t.title, t.stage_id, t.task_order, t.created_at
		FROM tasks t
		JOIN journey_stages s ON s.id = t.stage_id
		ORDER BY s.stage_order ASC, t.task_order ASC`
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// TaskIDsExist reports which of the given task ids exist.
func (r *JourneyRepository) TaskIDsExist(ctx context.Context, ids []string) (map[string]bool, error) {
	query, args, err := sqlx.In(`SELECT id FROM tasks WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build task ids query: %w", err)
	}
	query = r.db.Rebind(query)

	var found []string
	if err := r.db.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, fmt.Errorf("check task ids: %w", err)
	}

	exists := make(map[string]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	return exists, nil
}
