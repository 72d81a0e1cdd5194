package dto

import (
	"strings"

	"github.com/yigit/estudiantes/internal/app/models"
)

// CreateStudentRequest is the JSON body of POST /estudiantes.
// Name fields are pointers so an empty string is accepted while a missing key is not.
type CreateStudentRequest struct {
	ControlNumber   string  `json:"no_control" binding:"required,notblank,max=20" example:"A1"`
	FirstName       *string `json:"nombre" binding:"required,max=100" example:"Ana"`
	PaternalSurname *string `json:"ap_paterno" binding:"required,max=100" example:"Li"`
	MaternalSurname *string `json:"ap_materno" binding:"required,max=100" example:"Wu"`
	Semester        *int    `json:"semestre" binding:"required" example:"3"`
}

// ToModel converts a bound request into a Student. The control number is stored trimmed,
// as the HTML form does.
func (r CreateStudentRequest) ToModel() models.Student {
	return models.Student{
		ControlNumber:   strings.TrimSpace(r.ControlNumber),
		FirstName:       deref(r.FirstName),
		PaternalSurname: deref(r.PaternalSurname),
		MaternalSurname: deref(r.MaternalSurname),
		Semester:        derefInt(r.Semester),
	}
}

// UpdateStudentRequest is the JSON body of PUT /estudiantes/{id}. Absent keys are left untouched;
// no_control is not part of it and is ignored if sent.
type UpdateStudentRequest struct {
	FirstName       *string `json:"nombre" binding:"omitempty,max=100" example:"Ana"`
	PaternalSurname *string `json:"ap_paterno" binding:"omitempty,max=100" example:"Li"`
	MaternalSurname *string `json:"ap_materno" binding:"omitempty,max=100" example:"Wu"`
	Semester        *int    `json:"semestre" example:"4"`
}

// UpdateStudentFields are the keys UpdateStudentRequest accepts
var UpdateStudentFields = []string{
	models.ColumnFirstName,
	models.ColumnPaternalSurname,
	models.ColumnMaternalSurname,
	models.ColumnSemester,
}

// ToPatch converts the request into a partial update
func (r UpdateStudentRequest) ToPatch() models.StudentPatch {
	return models.StudentPatch{
		FirstName:       r.FirstName,
		PaternalSurname: r.PaternalSurname,
		MaternalSurname: r.MaternalSurname,
		Semester:        r.Semester,
	}
}

// StudentForm binds the HTML create/update forms. ControlNumber is only read on create.
type StudentForm struct {
	ControlNumber   string `form:"no_control" binding:"max=20"`
	FirstName       string `form:"nombre" binding:"max=100"`
	PaternalSurname string `form:"ap_paterno" binding:"max=100"`
	MaternalSurname string `form:"ap_materno" binding:"max=100"`
	Semester        *int   `form:"semestre" binding:"required"`
}

// NewStudentForm pre-fills a form from a stored record
func NewStudentForm(s models.Student) StudentForm {
	semester := s.Semester
	return StudentForm{
		ControlNumber:   s.ControlNumber,
		FirstName:       s.FirstName,
		PaternalSurname: s.PaternalSurname,
		MaternalSurname: s.MaternalSurname,
		Semester:        &semester,
	}
}

// ToModel converts the form into a Student
func (f StudentForm) ToModel() models.Student {
	return models.Student{
		ControlNumber:   f.ControlNumber,
		FirstName:       f.FirstName,
		PaternalSurname: f.PaternalSurname,
		MaternalSurname: f.MaternalSurname,
		Semester:        derefInt(f.Semester),
	}
}

// ToPatch overwrites every mutable field, as the edit form always posts all of them
func (f StudentForm) ToPatch() models.StudentPatch {
	return models.FullPatch(f.ToModel())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
