// Package category manages the globally shared list of workout categories.
// Categories have no owner and are not linked to exercise logs.
package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/model"
	"github.com/roach88/fittrack/internal/store"
)

var (
	// ErrDuplicateCategory is returned when a category name is already taken.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrNotFound is returned when no category has the given id.
	ErrNotFound = errors.New("category not found")
)

// Registry owns workout_categories.
type Registry struct {
	store *store.Store
	log   *zap.Logger
}

// New constructs a Registry.
func New(st *store.Store, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{store: st, log: log.Named("category")}
}

// List returns every category in insertion order.
func (r *Registry) List(ctx context.Context) ([]model.WorkoutCategory, error) {
	categories, err := store.Select(ctx, r.store, `
		SELECT category_id, category_name
		FROM workout_categories
		ORDER BY category_id ASC
	`, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Add creates a category and returns its id.
func (r *Registry) Add(ctx context.Context, name string) (model.CategoryID, error) {
	name = model.NormalizeName(name)
	id, err := r.store.Insert(ctx,
		"INSERT INTO workout_categories (category_name) VALUES (?)", name)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return 0, fmt.Errorf("add category %q: %w", name, ErrDuplicateCategory)
		}
		return 0, fmt.Errorf("add category: %w", err)
	}
	r.log.Info("category added", zap.Int64("category_id", id), zap.String("name", name))
	return model.CategoryID(id), nil
}

// Rename changes the name of category id. There is no pre-check for
// duplicates; a collision is caught by the table's UNIQUE constraint and
// reported as ErrDuplicateCategory.
func (r *Registry) Rename(ctx context.Context, id model.CategoryID, newName string) error {
	newName = model.NormalizeName(newName)
	n, err := r.store.Exec(ctx,
		"UPDATE workout_categories SET category_name = ? WHERE category_id = ?", newName, int64(id))
	if err != nil {
		if store.IsUniqueViolation(err) {
			return fmt.Errorf("rename category %d to %q: %w", id, newName, ErrDuplicateCategory)
		}
		return fmt.Errorf("rename category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("rename category %d: %w", id, ErrNotFound)
	}
	r.log.Info("category renamed", zap.Int64("category_id", int64(id)), zap.String("name", newName))
	return nil
}

// Remove deletes category id.
func (r *Registry) Remove(ctx context.Context, id model.CategoryID) error {
	n, err := r.store.Exec(ctx,
		"DELETE FROM workout_categories WHERE category_id = ?", int64(id))
	if err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("remove category %d: %w", id, ErrNotFound)
	}
	r.log.Info("category removed", zap.Int64("category_id", int64(id)))
	return nil
}

func scanCategory(rows *sql.Rows) (model.WorkoutCategory, error) {
	var c model.WorkoutCategory
	var id int64
	err := rows.Scan(&id, &c.Name)
	c.ID = model.CategoryID(id)
	return c, err
}
