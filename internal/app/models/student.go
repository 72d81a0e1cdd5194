package models

// Column names of the estudiantes table.
const (
	ColumnControlNumber   = "no_control"
	ColumnFirstName       = "nombre"
	ColumnPaternalSurname = "ap_paterno"
	ColumnMaternalSurname = "ap_materno"
	ColumnSemester        = "semestre"
)

// StudentColumns lists the table columns in scan order.
var StudentColumns = []string{
	ColumnControlNumber,
	ColumnFirstName,
	ColumnPaternalSurname,
	ColumnMaternalSurname,
	ColumnSemester,
}

// Student defines a student record based on the 'estudiantes' table.
// Values are passed by copy; use StudentPatch to derive a changed record.
type Student struct {
	ControlNumber   string `json:"no_control" db:"no_control" gorm:"column:no_control;primaryKey" example:"A1"` // Unique control number, immutable
	FirstName       string `json:"nombre" db:"nombre" gorm:"column:nombre" example:"Ana"`
	PaternalSurname string `json:"ap_paterno" db:"ap_paterno" gorm:"column:ap_paterno" example:"Li"`
	MaternalSurname string `json:"ap_materno" db:"ap_materno" gorm:"column:ap_materno" example:"Wu"`
	Semester        int    `json:"semestre" db:"semestre" gorm:"column:semestre" example:"3"`
}

// TableName pins the gorm table name.
func (Student) TableName() string {
	return "estudiantes"
}

// StudentPatch is a partial update. Nil fields are left untouched.
type StudentPatch struct {
	FirstName       *string
	PaternalSurname *string
	MaternalSurname *string
	Semester        *int
}

// IsEmpty reports whether the patch changes nothing.
func (p StudentPatch) IsEmpty() bool {
	return p.FirstName == nil && p.PaternalSurname == nil && p.MaternalSurname == nil && p.Semester == nil
}

// Apply returns s with the patch applied. s itself is not modified.
func (p StudentPatch) Apply(s Student) Student {
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.PaternalSurname != nil {
		s.PaternalSurname = *p.PaternalSurname
	}
	if p.MaternalSurname != nil {
		s.MaternalSurname = *p.MaternalSurname
	}
	if p.Semester != nil {
		s.Semester = *p.Semester
	}
	return s
}

// Columns returns the column -> value diff carried by the patch.
func (p StudentPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if p.FirstName != nil {
		cols[ColumnFirstName] = *p.FirstName
	}
	if p.PaternalSurname != nil {
		cols[ColumnPaternalSurname] = *p.PaternalSurname
	}
	if p.MaternalSurname != nil {
		cols[ColumnMaternalSurname] = *p.MaternalSurname
	}
	if p.Semester != nil {
		cols[ColumnSemester] = *p.Semester
	}
	return cols
}

// FullPatch builds a patch that overwrites every mutable field of a record with s.
func FullPatch(s Student) StudentPatch {
	return StudentPatch{
		FirstName:       &s.FirstName,
		PaternalSurname: &s.PaternalSurname,
		MaternalSurname: &s.MaternalSurname,
		Semester:        &s.Semester,
	}
}
