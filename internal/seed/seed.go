package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/estudiantes/internal/app/models"
	appRepos "github.com/yigit/estudiantes/internal/app/repositories"
	"github.com/yigit/estudiantes/internal/pkg/apperrors"
)

// DemoStudents are inserted by CreateDefaultData
var DemoStudents = []appModels.Student{
	{ControlNumber: "19210001", FirstName: "Ana", PaternalSurname: "López", MaternalSurname: "García", Semester: 1},
	{ControlNumber: "19210002", FirstName: "Luis", PaternalSurname: "Hernández", MaternalSurname: "Pérez", Semester: 3},
	{ControlNumber: "19210003", FirstName: "María", PaternalSurname: "Ramírez", MaternalSurname: "", Semester: 5},
}

// CreateDefaultData inserts the demo students that are not stored yet.
// Existing records are left untouched; other failures are collected and returned together.
func CreateDefaultData(ctx context.Context, students appRepos.StudentRepository, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo students...")
	var finalErr error // To collect potential errors without stopping the process

	created := 0
	for _, s := range DemoStudents {
		err := students.Insert(ctx, s)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrStudentAlreadyExists):
			lgr.Debug().Str("controlNumber", s.ControlNumber).Msg("Demo student already exists, skipping")
		default:
			lgr.Error().Err(err).Str("controlNumber", s.ControlNumber).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("created", created).Msg("Demo data check/creation finished.")
	return finalErr
}
