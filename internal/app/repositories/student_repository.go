package repositories

import (
	"context"

	"github.com/yigit/estudiantes/internal/app/models"
)

// StudentRepository is the record store for students, keyed by control number.
type StudentRepository interface {
	// List returns every student ordered by control number.
	List(ctx context.Context) ([]models.Student, error)
	// Get returns apperrors.ErrStudentNotFound when no row matches.
	Get(ctx context.Context, controlNumber string) (models.Student, error)
	// Insert returns apperrors.ErrStudentAlreadyExists on a primary key conflict.
	Insert(ctx context.Context, student models.Student) error
	// Update writes only the columns present in patch and returns the stored result.
	// An empty patch only checks that the record exists.
	Update(ctx context.Context, controlNumber string, patch models.StudentPatch) (models.Student, error)
	// Delete is idempotent: deleting a missing record is not an error.
	Delete(ctx context.Context, controlNumber string) error
	Ping(ctx context.Context) error
	Close() error
}
