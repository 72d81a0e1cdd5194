package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/estudiantes/internal/app/models"
	"github.com/yigit/estudiantes/internal/pkg/apperrors"
	"github.com/yigit/estudiantes/internal/pkg/dberrors"
	"github.com/yigit/estudiantes/internal/pkg/logger"
	"gorm.io/gorm"
)

// GormStudentRepository is the gorm backed student store. The *gorm.DB must be opened with
// TranslateError so primary key conflicts surface as gorm.ErrDuplicatedKey.
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (r *GormStudentRepository) getDB(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func byControlNumber(controlNumber string) (string, string) {
	return models.ColumnControlNumber + " = ?", controlNumber
}

// List retrieves all students
func (r *GormStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	if err := r.getDB(ctx, nil).Order(models.ColumnControlNumber + " ASC").Find(&students).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// Get retrieves a student by control number
func (r *GormStudentRepository) Get(ctx context.Context, controlNumber string) (models.Student, error) {
	return r.get(ctx, nil, controlNumber)
}

func (r *GormStudentRepository) get(ctx context.Context, tx *gorm.DB, controlNumber string) (models.Student, error) {
	var s models.Student
	query, arg := byControlNumber(controlNumber)
	if err := r.getDB(ctx, tx).Where(query, arg).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("controlNumber", controlNumber).Msg("Error getting student")
		return models.Student{}, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

// Insert creates a new student
func (r *GormStudentRepository) Insert(ctx context.Context, student models.Student) error {
	if err := r.getDB(ctx, nil).Create(&student).Error; err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrStudentAlreadyExists, err)
		}
		logger.Error().Err(err).Str("controlNumber", student.ControlNumber).Msg("Error inserting student")
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

// Update applies a partial update inside a transaction and returns the new state
func (r *GormStudentRepository) Update(ctx context.Context, controlNumber string, patch models.StudentPatch) (models.Student, error) {
	var updated models.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.get(ctx, tx, controlNumber)
		if err != nil {
			return err
		}
		if !patch.IsEmpty() {
			query, arg := byControlNumber(controlNumber)
			if err := r.getDB(ctx, tx).Model(&models.Student{}).Where(query, arg).Updates(patch.Columns()).Error; err != nil {
				logger.Error().Err(err).Str("controlNumber", controlNumber).Msg("Error updating student")
				return fmt.Errorf("failed to update student: %w", err)
			}
		}
		updated = patch.Apply(current)
		return nil
	})
	if err != nil {
		return models.Student{}, err
	}
	return updated, nil
}

// Delete removes a student if present
func (r *GormStudentRepository) Delete(ctx context.Context, controlNumber string) error {
	query, arg := byControlNumber(controlNumber)
	result := r.getDB(ctx, nil).Where(query, arg).Delete(&models.Student{})
	if result.Error != nil {
		logger.Error().Err(result.Error).Str("controlNumber", controlNumber).Msg("Error deleting student")
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Debug().Str("controlNumber", controlNumber).Msg("Delete matched no student")
	}
	return nil
}

// Ping checks the underlying connection pool
func (r *GormStudentRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (r *GormStudentRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
