package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/estudiantes/internal/app/models"
	"github.com/yigit/estudiantes/internal/pkg/apperrors"
	"github.com/yigit/estudiantes/internal/pkg/dberrors"
	"github.com/yigit/estudiantes/internal/pkg/logger"
)

const (
	studentsTable      = "estudiantes"
	studentsPrimaryKey = "estudiantes_pkey"
)

// PostgresStudentRepository handles student database operations on PostgreSQL
type PostgresStudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresStudentRepository creates a new PostgresStudentRepository
func NewPostgresStudentRepository(db *pgxpool.Pool) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ControlNumber, &s.FirstName, &s.PaternalSurname, &s.MaternalSurname, &s.Semester)
	return s, err
}

func (r *PostgresStudentRepository) listQuery() (string, []interface{}, error) {
	return r.sb.Select(models.StudentColumns...).
		From(studentsTable).
		OrderBy(models.ColumnControlNumber + " ASC").
		ToSql()
}

func (r *PostgresStudentRepository) getQuery(controlNumber string) (string, []interface{}, error) {
	return r.sb.Select(models.StudentColumns...).
		From(studentsTable).
		Where(squirrel.Eq{models.ColumnControlNumber: controlNumber}).
		Limit(1).
		ToSql()
}

func (r *PostgresStudentRepository) insertQuery(s models.Student) (string, []interface{}, error) {
	return r.sb.Insert(studentsTable).
		Columns(models.StudentColumns...).
		Values(s.ControlNumber, s.FirstName, s.PaternalSurname, s.MaternalSurname, s.Semester).
		ToSql()
}

func (r *PostgresStudentRepository) updateQuery(controlNumber string, patch models.StudentPatch) (string, []interface{}, error) {
	return r.sb.Update(studentsTable).
		SetMap(patch.Columns()).
		Where(squirrel.Eq{models.ColumnControlNumber: controlNumber}).
		Suffix("RETURNING " + strings.Join(models.StudentColumns, ", ")).
		ToSql()
}

func (r *PostgresStudentRepository) deleteQuery(controlNumber string) (string, []interface{}, error) {
	return r.sb.Delete(studentsTable).
		Where(squirrel.Eq{models.ColumnControlNumber: controlNumber}).
		ToSql()
}

// List retrieves all students
func (r *PostgresStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	sql, args, err := r.listQuery()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Get retrieves a student by control number
func (r *PostgresStudentRepository) Get(ctx context.Context, controlNumber string) (models.Student, error) {
	sql, args, err := r.getQuery(controlNumber)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return models.Student{}, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Student{}, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("controlNumber", controlNumber).Msg("Error scanning student row")
		return models.Student{}, fmt.Errorf("error getting student: %w", err)
	}

	return s, nil
}

// Insert creates a new student
func (r *PostgresStudentRepository) Insert(ctx context.Context, student models.Student) error {
	sql, args, err := r.insertQuery(student)
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert student SQL")
		return fmt.Errorf("failed to build insert student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentsPrimaryKey) {
			return fmt.Errorf("%w: %v", apperrors.ErrStudentAlreadyExists, err)
		}
		logger.Error().Err(err).Str("controlNumber", student.ControlNumber).Msg("Error executing insert student query")
		return fmt.Errorf("error inserting student: %w", err)
	}

	return nil
}

// Update applies a partial update and returns the stored row
func (r *PostgresStudentRepository) Update(ctx context.Context, controlNumber string, patch models.StudentPatch) (models.Student, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, controlNumber)
	}

	sql, args, err := r.updateQuery(controlNumber, patch)
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return models.Student{}, fmt.Errorf("failed to build update student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Student{}, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("controlNumber", controlNumber).Msg("Error executing update student query")
		return models.Student{}, fmt.Errorf("error updating student: %w", err)
	}

	return s, nil
}

// Delete removes a student if present
func (r *PostgresStudentRepository) Delete(ctx context.Context, controlNumber string) error {
	sql, args, err := r.deleteQuery(controlNumber)
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("controlNumber", controlNumber).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Debug().Str("controlNumber", controlNumber).Msg("Delete matched no student")
	}

	return nil
}

// Ping checks the pool can reach the database
func (r *PostgresStudentRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close releases the pool
func (r *PostgresStudentRepository) Close() error {
	r.db.Close()
	return nil
}
