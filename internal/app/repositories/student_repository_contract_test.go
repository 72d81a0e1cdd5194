package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/estudiantes/internal/app/models"
	"github.com/yigit/estudiantes/internal/pkg/apperrors"
)

func ptr[T any](v T) *T { return &v }

var ana = models.Student{ControlNumber: "A1", FirstName: "Ana", PaternalSurname: "Li", MaternalSurname: "Wu", Semester: 3}

// runStudentRepositoryContract exercises the behaviour every StudentRepository must share.
// newRepo must return an empty store.
func runStudentRepositoryContract(t *testing.T, newRepo func(t *testing.T) StudentRepository) {
	ctx := context.Background()

	t.Run("insert then list includes it once", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, ana))

		students, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Student{ana}, students)
	})

	t.Run("list on empty store", func(t *testing.T) {
		repo := newRepo(t)
		students, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, students)
		assert.Empty(t, students)
	})

	t.Run("list is ordered by control number", func(t *testing.T) {
		repo := newRepo(t)
		for _, cn := range []string{"C3", "A1", "B2"} {
			s := ana
			s.ControlNumber = cn
			require.NoError(t, repo.Insert(ctx, s), "insert %s", cn)
		}

		students, err := repo.List(ctx)
		require.NoError(t, err)
		var got []string
		for _, s := range students {
			got = append(got, s.ControlNumber)
		}
		assert.Equal(t, []string{"A1", "B2", "C3"}, got)
	})

	t.Run("duplicate insert fails", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, ana))

		dup := ana
		dup.FirstName = "Otra"
		err := repo.Insert(ctx, dup)
		assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)
		assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

		got, err := repo.Get(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, ana, got, "original record changed")
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := newRepo(t).Get(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("partial update changes only the given field", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, ana))

		updated, err := repo.Update(ctx, "A1", models.StudentPatch{Semester: ptr(4)})
		require.NoError(t, err)
		want := ana
		want.Semester = 4
		assert.Equal(t, want, updated)

		stored, err := repo.Get(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, want, stored)
	})

	t.Run("full update overwrites mutable fields", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, ana))

		next := models.Student{ControlNumber: "A1", FirstName: "Eva", PaternalSurname: "Ro", MaternalSurname: "", Semester: 8}
		_, err := repo.Update(ctx, "A1", models.FullPatch(next))
		require.NoError(t, err)

		stored, err := repo.Get(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, next, stored)
	})

	t.Run("update missing does not create", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, "ghost", models.StudentPatch{Semester: ptr(1)})
		require.ErrorIs(t, err, apperrors.ErrStudentNotFound)

		_, err = repo.Get(ctx, "ghost")
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound, "update created a record")
	})

	t.Run("empty patch checks existence", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, "ghost", models.StudentPatch{})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

		require.NoError(t, repo.Insert(ctx, ana))
		got, err := repo.Update(ctx, "A1", models.StudentPatch{})
		require.NoError(t, err)
		assert.Equal(t, ana, got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, ana))

		assert.NoError(t, repo.Delete(ctx, "missing"))
		students, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, students, 1, "deleting a missing record changed the store")

		require.NoError(t, repo.Delete(ctx, "A1"))
		assert.NoError(t, repo.Delete(ctx, "A1"), "second delete")

		_, err = repo.Get(ctx, "A1")
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound, "record still present after delete")
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(ctx))
	})
}
