package catalogue

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/models"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// GormStore keeps the catalogue in the chord_shapes table
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Lookup(ctx context.Context, rootPC int, quality string) ([]Shape, error) {
	var rows []models.ChordShape
	err := s.db.WithContext(ctx).
		Where("root_pc = ? AND quality = ?", theory.NormalizeToPitchClass(rootPC), theory.NormalizeQualityToken(quality)).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up shapes: %w", err)
	}
	return fromModels(rows)
}

func (s *GormStore) All(ctx context.Context) ([]Shape, error) {
	var rows []models.ChordShape
	if err := s.db.WithContext(ctx).Order("root_pc, quality, position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list shapes: %w", err)
	}
	return fromModels(rows)
}

// Save upserts shape on (root, quality, position)
func (s *GormStore) Save(ctx context.Context, shape Shape) error {
	shape.Quality = theory.NormalizeQualityToken(shape.Quality)
	if err := shape.Validate(); err != nil {
		return err
	}

	row := toModel(shape)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "root_pc"}, {Name: "quality"}, {Name: "position"}},
		DoUpdates: clause.AssignmentColumns([]string{"shape", "source", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save shape %s: %w", shape.Label(), err)
	}
	return nil
}

// SeedIfEmpty loads the built-in shapes into an empty table
func (s *GormStore) SeedIfEmpty(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ChordShape{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count shapes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seed := Seed()
	for _, shape := range seed {
		if err := s.Save(ctx, shape); err != nil {
			return 0, err
		}
	}
	return len(seed), nil
}

func toModel(s Shape) models.ChordShape {
	source := s.Source
	if source == "" {
		source = "user"
	}
	return models.ChordShape{
		RootPC:   s.RootPC,
		Quality:  s.Quality,
		Position: s.Position,
		Shape:    s.Chart(),
		Source:   source,
	}
}

func fromModel(row models.ChordShape) (Shape, error) {
	frets, err := fretboard.ParseShape(row.Shape)
	if err != nil {
		return Shape{}, fmt.Errorf("shape row %d: %w", row.ID, err)
	}
	return Shape{
		RootPC:   row.RootPC,
		Quality:  row.Quality,
		Position: row.Position,
		Frets:    frets,
		Source:   row.Source,
	}, nil
}

func fromModels(rows []models.ChordShape) ([]Shape, error) {
	shapes := make([]Shape, 0, len(rows))
	for _, row := range rows {
		s, err := fromModel(row)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}
