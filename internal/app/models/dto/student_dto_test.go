package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/estudiantes/internal/app/models"
	"github.com/yigit/estudiantes/internal/pkg/validation"
)

func TestCreateStudentRequestToModel(t *testing.T) {
	var req CreateStudentRequest
	body := `{"no_control":"A1","nombre":"Ana","ap_paterno":"Li","ap_materno":"","semestre":3}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := models.Student{ControlNumber: "A1", FirstName: "Ana", PaternalSurname: "Li", MaternalSurname: "", Semester: 3}
	if got := req.ToModel(); got != want {
		t.Errorf("ToModel = %+v, want %+v", got, want)
	}
}

func TestUpdateStudentRequestOnlyCarriesPresentKeys(t *testing.T) {
	var req UpdateStudentRequest
	if err := json.Unmarshal([]byte(`{"semestre":4,"no_control":"B2"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	patch := req.ToPatch()
	if patch.Semester == nil || *patch.Semester != 4 {
		t.Fatalf("semestre not carried: %+v", patch)
	}
	if patch.FirstName != nil || patch.PaternalSurname != nil || patch.MaternalSurname != nil {
		t.Errorf("absent keys leaked into patch: %+v", patch)
	}
}

func TestStudentFormRoundTrip(t *testing.T) {
	s := models.Student{ControlNumber: "A1", FirstName: "Ana", PaternalSurname: "Li", MaternalSurname: "Wu", Semester: 3}
	form := NewStudentForm(s)
	if got := form.ToModel(); got != s {
		t.Errorf("form round trip = %+v, want %+v", got, s)
	}
	if len(form.ToPatch().Columns()) != 4 {
		t.Errorf("form patch should overwrite all four mutable columns")
	}
}

func TestHandleValidationError(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	if err := validation.RegisterRules(v); err != nil {
		t.Fatalf("register rules: %v", err)
	}
	err := v.Struct(CreateStudentRequest{ControlNumber: "A1"})
	if err == nil {
		t.Fatal("expected validation error for missing fields")
	}

	detail := HandleValidationError(err)
	if detail.Code != ErrorCodeValidationFailed {
		t.Errorf("code = %s", detail.Code)
	}
	fields, ok := detail.Details.([]ErrorDetail)
	if !ok || len(fields) != 4 {
		t.Fatalf("details = %#v, want 4 field errors", detail.Details)
	}
	for _, f := range fields {
		if !strings.HasSuffix(f.Message, "is required") {
			t.Errorf("unexpected message %q", f.Message)
		}
	}
}

func TestHandleValidationErrorTypeMismatch(t *testing.T) {
	var req CreateStudentRequest
	err := json.Unmarshal([]byte(`{"semestre":"tercero"}`), &req)
	if err == nil {
		t.Fatal("expected type error")
	}

	detail := HandleValidationError(err)
	if detail.Field != "semestre" {
		t.Errorf("field = %q, want semestre", detail.Field)
	}
}
