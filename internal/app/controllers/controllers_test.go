package controllers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/estudiantes/internal/app/migrations"
	"github.com/yigit/estudiantes/internal/app/models"
	"github.com/yigit/estudiantes/internal/app/repositories"
	"github.com/yigit/estudiantes/internal/bootstrap"
	"github.com/yigit/estudiantes/internal/db"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var ana = models.Student{ControlNumber: "A1", FirstName: "Ana", PaternalSurname: "Li", MaternalSurname: "Wu", Semester: 3}

// newStore returns an empty in-memory sqlite store
func newStore(t *testing.T) repositories.StudentRepository {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:", 1, 1)
	require.NoError(t, err, "open sqlite")
	require.NoError(t, migrations.AutoMigrate(gdb), "migrate")

	store := repositories.NewGormStudentRepository(gdb)
	t.Cleanup(func() { store.Close() })
	return store
}

// newRouter builds the application router, route table and middleware included, around store
func newRouter(t *testing.T, store repositories.StudentRepository) *gin.Engine {
	t.Helper()
	router, err := bootstrap.NewRouter(bootstrap.BuildDependencies(store, zerolog.Nop()))
	require.NoError(t, err, "router")
	return router
}

func serve(router http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	return serve(router, http.MethodPost, target, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func mustInsert(t *testing.T, store repositories.StudentRepository, s models.Student) {
	t.Helper()
	require.NoError(t, store.Insert(context.Background(), s), "seed %s", s.ControlNumber)
}

func mustGet(t *testing.T, store repositories.StudentRepository, controlNumber string) models.Student {
	t.Helper()
	s, err := store.Get(context.Background(), controlNumber)
	require.NoError(t, err, "get %s", controlNumber)
	return s
}

func count(t *testing.T, store repositories.StudentRepository) int {
	t.Helper()
	students, err := store.List(context.Background())
	require.NoError(t, err, "list")
	return len(students)
}

// failingStore fails every call with err
type failingStore struct{ err error }

func (f failingStore) List(context.Context) ([]models.Student, error) { return nil, f.err }
func (f failingStore) Get(context.Context, string) (models.Student, error) {
	return models.Student{}, f.err
}
func (f failingStore) Insert(context.Context, models.Student) error { return f.err }
func (f failingStore) Update(context.Context, string, models.StudentPatch) (models.Student, error) {
	return models.Student{}, f.err
}
func (f failingStore) Delete(context.Context, string) error { return f.err }
func (f failingStore) Ping(context.Context) error { return f.err }
func (f failingStore) Close() error { return nil }

var errStoreDown = errors.New("connection refused")
