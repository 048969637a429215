package store

import (
	"context"
	"fmt"

	"recipecost/internal/models"

	"github.com/jinzhu/gorm"
)

// Compile-time interface check.
var _ Store = (*SQL)(nil)

// IngredientRow is the database representation of an ingredient. Seq keeps
// insertion order; EntityID is the identifier callers see.
type IngredientRow struct {
	Seq        uint   `gorm:"primary_key;AUTO_INCREMENT"`
	EntityID   string `gorm:"column:entity_id;index"`
	Name       string
	Price      float64
	PackWeight float64
}

// TableName sets the table name for IngredientRow
func (IngredientRow) TableName() string {
	return "ingredients"
}

// RecipeRow is the database representation of a recipe
type RecipeRow struct {
	Seq        uint   `gorm:"primary_key;AUTO_INCREMENT"`
	EntityID   string `gorm:"column:entity_id;index"`
	Name       string
	Lines      models.RecipeLines `gorm:"column:ingredient_lines;type:text"`
	ExtraCosts float64
}

// TableName sets the table name for RecipeRow
func (RecipeRow) TableName() string {
	return "recipes"
}

// SQL persists both collections through gorm. The caller owns the *gorm.DB
// and must have migrated IngredientRow and RecipeRow.
type SQL struct {
	db          *gorm.DB
	ingredients *sqlCollection[models.Ingredient, IngredientRow]
	recipes     *sqlCollection[models.Recipe, RecipeRow]
}

// NewSQL creates a store on top of an open database that generates UUIDs
func NewSQL(db *gorm.DB) *SQL {
	return NewSQLWithIDs(db, NewUUID)
}

// NewSQLWithIDs creates a store on top of an open database using newID for
// records added without an identifier
func NewSQLWithIDs(db *gorm.DB, newID IDFunc) *SQL {
	return &SQL{
		db: db,
		ingredients: &sqlCollection[models.Ingredient, IngredientRow]{
			db:    db,
			newID: newID,
			toRow: func(seq uint, i models.Ingredient) IngredientRow {
				return IngredientRow{Seq: seq, EntityID: i.ID, Name: i.Name, Price: i.Price, PackWeight: i.PackWeight}
			},
			fromRow: func(r IngredientRow) models.Ingredient {
				return models.Ingredient{ID: r.EntityID, Name: r.Name, Price: r.Price, PackWeight: r.PackWeight}
			},
			seqOf: func(r IngredientRow) uint { return r.Seq },
		},
		recipes: &sqlCollection[models.Recipe, RecipeRow]{
			db:    db,
			newID: newID,
			toRow: func(seq uint, r models.Recipe) RecipeRow {
				return RecipeRow{Seq: seq, EntityID: r.ID, Name: r.Name, Lines: r.Ingredients, ExtraCosts: r.ExtraCosts}
			},
			fromRow: func(r RecipeRow) models.Recipe {
				return models.Recipe{ID: r.EntityID, Name: r.Name, Ingredients: r.Lines, ExtraCosts: r.ExtraCosts}
			},
			seqOf: func(r RecipeRow) uint { return r.Seq },
		},
	}
}

// Ingredients returns the ingredient collection
func (s *SQL) Ingredients() Collection[models.Ingredient] {
	return s.ingredients
}

// Recipes returns the recipe collection
func (s *SQL) Recipes() Collection[models.Recipe] {
	return s.recipes
}

// Close closes the underlying database
func (s *SQL) Close() error {
	return s.db.Close()
}

type sqlCollection[T Record[T], R any] struct {
	db      *gorm.DB
	newID   IDFunc
	toRow   func(seq uint, rec T) R
	fromRow func(R) T
	seqOf   func(R) uint
}

func (c *sqlCollection[T, R]) Add(ctx context.Context, rec T) (T, error) {
	if err := ctx.Err(); err != nil {
		return rec, err
	}
	if rec.GetID() == "" {
		rec = rec.WithID(c.newID())
	}

	row := c.toRow(0, rec)
	if err := c.db.Create(&row).Error; err != nil {
		return rec, fmt.Errorf("failed to insert %s: %w", rec.GetID(), err)
	}
	return rec, nil
}

func (c *sqlCollection[T, R]) Update(ctx context.Context, id string, rec T) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		return rec, false, err
	}

	existing, found, err := c.first(id)
	if err != nil || !found {
		return rec, false, err
	}

	stored := rec.WithID(id)
	row := c.toRow(c.seqOf(existing), stored)
	if err := c.db.Save(&row).Error; err != nil {
		return rec, false, fmt.Errorf("failed to update %s: %w", id, err)
	}
	return stored, true, nil
}

func (c *sqlCollection[T, R]) Delete(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	res := c.db.Where("entity_id = ?", id).Delete(new(R))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", id, res.Error)
	}
	return int(res.RowsAffected), nil
}

func (c *sqlCollection[T, R]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []R
	if err := c.db.Order("seq asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list: %w", err)
	}

	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = c.fromRow(row)
	}
	return out, nil
}

func (c *sqlCollection[T, R]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	row, found, err := c.first(id)
	if err != nil || !found {
		return zero, false, err
	}
	return c.fromRow(row), true, nil
}

func (c *sqlCollection[T, R]) first(id string) (R, bool, error) {
	var row R
	err := c.db.Where("entity_id = ?", id).Order("seq asc").First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return row, false, nil
	}
	if err != nil {
		return row, false, fmt.Errorf("failed to load %s: %w", id, err)
	}
	return row, true, nil
}
