package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/estudiantes/internal/app/models/dto"
	"github.com/yigit/estudiantes/internal/app/repositories"
	"github.com/yigit/estudiantes/internal/app/views"
	"github.com/yigit/estudiantes/internal/pkg/apperrors"
	"github.com/yigit/estudiantes/internal/pkg/validation"
)

const studentsPath = "/estudiantes"

// StudentViewController serves the HTML pages for students
type StudentViewController struct {
	students repositories.StudentRepository
}

// NewStudentViewController creates a new StudentViewController
func NewStudentViewController(students repositories.StudentRepository) *StudentViewController {
	return &StudentViewController{
		students: students,
	}
}

// Index lists every student
func (c *StudentViewController) Index(ctx *gin.Context) {
	students, err := c.students.List(ctx.Request.Context())
	if err != nil {
		abortPage(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, views.IndexTemplate, gin.H{
		"Title":    "Estudiantes",
		"Students": students,
	})
}

// NewForm renders an empty create form
func (c *StudentViewController) NewForm(ctx *gin.Context) {
	renderCreateForm(ctx, http.StatusOK, dto.StudentForm{}, "")
}

// Create inserts a student from the submitted form and redirects to the list
func (c *StudentViewController) Create(ctx *gin.Context) {
	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		renderCreateForm(ctx, http.StatusBadRequest, form, formErrorMessage(err))
		return
	}
	if validation.IsBlank(form.ControlNumber) {
		renderCreateForm(ctx, http.StatusBadRequest, form, "Datos inválidos: no_control is required")
		return
	}
	form.ControlNumber = strings.TrimSpace(form.ControlNumber)

	if err := c.students.Insert(ctx.Request.Context(), form.ToModel()); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			_ = ctx.Error(err)
			renderCreateForm(ctx, http.StatusConflict, form, dto.MsgStudentExists)
			return
		}
		abortPage(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, studentsPath)
}

// EditForm renders the update form pre-filled with the stored record
func (c *StudentViewController) EditForm(ctx *gin.Context) {
	student, err := c.students.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		abortPage(ctx, err)
		return
	}

	renderUpdateForm(ctx, http.StatusOK, dto.NewStudentForm(student), "")
}

// Update overwrites every mutable field from the submitted form and redirects to the list
func (c *StudentViewController) Update(ctx *gin.Context) {
	controlNumber := ctx.Param("id")

	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		form.ControlNumber = controlNumber
		renderUpdateForm(ctx, http.StatusBadRequest, form, formErrorMessage(err))
		return
	}

	if _, err := c.students.Update(ctx.Request.Context(), controlNumber, form.ToPatch()); err != nil {
		abortPage(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, studentsPath)
}

// Delete removes the student if present and always redirects to the list
func (c *StudentViewController) Delete(ctx *gin.Context) {
	if err := c.students.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		abortPage(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, studentsPath)
}

func renderCreateForm(ctx *gin.Context, status int, form dto.StudentForm, errMsg string) {
	ctx.HTML(status, views.CreateTemplate, gin.H{
		"Title": "Nuevo estudiante",
		"Form":  form,
		"Error": errMsg,
	})
}

func renderUpdateForm(ctx *gin.Context, status int, form dto.StudentForm, errMsg string) {
	ctx.HTML(status, views.UpdateTemplate, gin.H{
		"Title": "Editar estudiante",
		"Form":  form,
		"Error": errMsg,
	})
}

// abortPage ends an HTML request with 500; the request logger reports err.
func abortPage(ctx *gin.Context, err error) {
	_ = ctx.AbortWithError(http.StatusInternalServerError, err)
	ctx.String(http.StatusInternalServerError, dto.MsgInternalError)
}

func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, dto.FormatFieldError(fe))
		}
		return dto.MsgValidation + ": " + strings.Join(msgs, "; ")
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return dto.MsgValidation + ": semestre must be an integer"
	}

	return dto.MsgValidation
}
