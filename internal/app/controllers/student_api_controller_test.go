package controllers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/estudiantes/internal/app/models"
	"github.com/yigit/estudiantes/internal/app/models/dto"
)

type apiBody struct {
	Success bool             `json:"success"`
	Msg     string           `json:"msg"`
	Data    *models.Student  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func decode(t *testing.T, raw []byte) apiBody {
	t.Helper()
	var body apiBody
	require.NoError(t, json.Unmarshal(raw, &body), "decode %s", raw)
	return body
}

const anaJSON = `{"no_control":"A1","nombre":"Ana","ap_paterno":"Li","ap_materno":"Wu","semestre":3}`

func TestCreateStudent(t *testing.T) {
	store := newStore(t)
	router := newRouter(t, store)

	w := serve(router, http.MethodPost, "/estudiantes", strings.NewReader(anaJSON), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w.Body.Bytes())
	assert.True(t, body.Success)
	assert.Equal(t, dto.MsgStudentCreated, body.Msg)
	if assert.NotNil(t, body.Data) {
		assert.Equal(t, ana, *body.Data)
	}
	assert.Equal(t, ana, mustGet(t, store, "A1"))
}

func TestCreateStudentRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantMsg   string
		wantField string
	}{
		{name: "empty body", body: "", wantMsg: dto.MsgInvalidJSON},
		{name: "not json", body: "no_control=A1", wantMsg: dto.MsgInvalidJSON},
		{name: "truncated", body: `{"no_control":`, wantMsg: dto.MsgInvalidJSON},
		{name: "null", body: "null", wantMsg: dto.MsgInvalidJSON},
		{name: "array", body: "[]", wantMsg: dto.MsgInvalidJSON},
		{name: "empty object", body: "{}", wantMsg: dto.MsgInvalidJSON},
		{
			name:      "missing semestre",
			body:      `{"no_control":"A1","nombre":"Ana","ap_paterno":"Li","ap_materno":"Wu"}`,
			wantMsg:   dto.MsgValidation,
			wantField: "semestre",
		},
		{
			name:      "blank no_control",
			body:      `{"no_control":"  ","nombre":"Ana","ap_paterno":"Li","ap_materno":"Wu","semestre":3}`,
			wantMsg:   dto.MsgValidation,
			wantField: "no_control",
		},
		{
			name:      "no_control too long",
			body:      `{"no_control":"` + strings.Repeat("X", 30) + `","nombre":"Ana","ap_paterno":"Li","ap_materno":"Wu","semestre":3}`,
			wantMsg:   dto.MsgValidation,
			wantField: "no_control",
		},
		{
			name:      "semestre not a number",
			body:      `{"no_control":"A1","nombre":"Ana","ap_paterno":"Li","ap_materno":"Wu","semestre":"3"}`,
			wantMsg:   dto.MsgValidation,
			wantField: "semestre",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			router := newRouter(t, store)

			w := serve(router, http.MethodPost, "/estudiantes", strings.NewReader(tt.body), "application/json")
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			body := decode(t, w.Body.Bytes())
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Msg)
			if tt.wantField != "" {
				assert.Contains(t, w.Body.String(), `"field":"`+tt.wantField+`"`)
			}
			assert.Zero(t, count(t, store), "records created")
		})
	}
}

func TestCreateStudentAllowsEmptyMaternalSurname(t *testing.T) {
	store := newStore(t)
	router := newRouter(t, store)

	body := `{"no_control":"B2","nombre":"Eva","ap_paterno":"Ro","ap_materno":"","semestre":1}`
	w := serve(router, http.MethodPost, "/estudiantes", strings.NewReader(body), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Empty(t, mustGet(t, store, "B2").MaternalSurname)
}

func TestCreateStudentTrimsControlNumber(t *testing.T) {
	store := newStore(t)
	router := newRouter(t, store)

	body := `{"no_control":" B2 ","nombre":"Eva","ap_paterno":"Ro","ap_materno":"Sa","semestre":1}`
	w := serve(router, http.MethodPost, "/estudiantes", strings.NewReader(body), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := decode(t, w.Body.Bytes())
	if assert.NotNil(t, got.Data) {
		assert.Equal(t, "B2", got.Data.ControlNumber)
	}
	assert.Equal(t, "Eva", mustGet(t, store, "B2").FirstName)
}

func TestCreateStudentDuplicate(t *testing.T) {
	store := newStore(t)
	mustInsert(t, store, ana)
	router := newRouter(t, store)

	w := serve(router, http.MethodPost, "/estudiantes", strings.NewReader(anaJSON), "application/json")
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, dto.MsgStudentExists, decode(t, w.Body.Bytes()).Msg)
	assert.Equal(t, 1, count(t, store))
}

func TestCreateStudentStoreFailure(t *testing.T) {
	router := newRouter(t, failingStore{err: errStoreDown})

	w := serve(router, http.MethodPost, "/estudiantes", strings.NewReader(anaJSON), "application/json")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), errStoreDown.Error(), "internal error leaked to client")
}

func TestUpdateStudentPartial(t *testing.T) {
	store := newStore(t)
	mustInsert(t, store, ana)
	router := newRouter(t, store)

	w := serve(router, http.MethodPut, "/estudiantes/A1", strings.NewReader(`{"semestre":4}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	want := ana
	want.Semester = 4
	body := decode(t, w.Body.Bytes())
	assert.Equal(t, dto.MsgStudentUpdated, body.Msg)
	if assert.NotNil(t, body.Data) {
		assert.Equal(t, want, *body.Data)
	}
	assert.Equal(t, want, mustGet(t, store, "A1"))
}

func TestUpdateStudentIgnoresControlNumber(t *testing.T) {
	store := newStore(t)
	mustInsert(t, store, ana)
	router := newRouter(t, store)

	w := serve(router, http.MethodPut, "/estudiantes/A1", strings.NewReader(`{"no_control":"Z9","nombre":"Eva"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Eva", mustGet(t, store, "A1").FirstName)
	assert.Equal(t, 1, count(t, store))
}

func TestUpdateStudentEmptyObjectIsNoop(t *testing.T) {
	store := newStore(t)
	mustInsert(t, store, ana)
	router := newRouter(t, store)

	w := serve(router, http.MethodPut, "/estudiantes/A1", strings.NewReader(`{}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, ana, mustGet(t, store, "A1"))
}

func TestUpdateStudentRejectsNullFields(t *testing.T) {
	store := newStore(t)
	mustInsert(t, store, ana)
	router := newRouter(t, store)

	for _, field := range dto.UpdateStudentFields {
		t.Run(field, func(t *testing.T) {
			body := `{"semestre":5,"` + field + `": null}`
			if field == "semestre" {
				body = `{"nombre":"Eva","semestre":null}`
			}
			w := serve(router, http.MethodPut, "/estudiantes/A1", strings.NewReader(body), "application/json")
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			got := decode(t, w.Body.Bytes())
			assert.Equal(t, dto.MsgValidation, got.Msg)
			if assert.NotNil(t, got.Error) {
				assert.Equal(t, field, got.Error.Field)
			}
			assert.Equal(t, ana, mustGet(t, store, "A1"), "record changed by a rejected update")
		})
	}
}

func TestUpdateStudentNotFound(t *testing.T) {
	for _, body := range []string{`{"semestre":4}`, `not json`, `{"nombre":null}`} {
		store := newStore(t)
		router := newRouter(t, store)

		w := serve(router, http.MethodPut, "/estudiantes/ghost", strings.NewReader(body), "application/json")
		require.Equal(t, http.StatusNotFound, w.Code, "body %q", body)
		assert.Equal(t, dto.MsgStudentNotFound, decode(t, w.Body.Bytes()).Msg)
		assert.Zero(t, count(t, store), "PUT created records")
	}
}

func TestUpdateStudentBadBody(t *testing.T) {
	store := newStore(t)
	mustInsert(t, store, ana)
	router := newRouter(t, store)

	for _, body := range []string{"", "{", `{"semestre":"cuatro"}`} {
		w := serve(router, http.MethodPut, "/estudiantes/A1", strings.NewReader(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
	assert.Equal(t, ana, mustGet(t, store, "A1"), "stored record changed")
}
