package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/estudiantes/internal/app/models/dto"
	"github.com/yigit/estudiantes/internal/app/repositories"
	"github.com/yigit/estudiantes/internal/middleware"
	"github.com/yigit/estudiantes/internal/pkg/apperrors"
)

// StudentAPIController handles the JSON student endpoints
type StudentAPIController struct {
	students repositories.StudentRepository
}

// NewStudentAPIController creates a new StudentAPIController
func NewStudentAPIController(students repositories.StudentRepository) *StudentAPIController {
	return &StudentAPIController{
		students: students,
	}
}

// CreateStudent inserts a student from a JSON body
// @Summary Create a student
// @Description Inserts a new student record. Every field is required.
// @Tags estudiantes
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Estudiante agregado correctamente"
// @Failure 400 {object} dto.ErrorResponse "JSON inválido or missing fields"
// @Failure 409 {object} dto.ErrorResponse "Control number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /estudiantes [post]
func (c *StudentAPIController) CreateStudent(ctx *gin.Context) {
	body, _, ok := readJSONObject(ctx, true)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		respondBindError(ctx, err)
		return
	}

	student := req.ToModel()
	if err := c.students.Insert(ctx.Request.Context(), student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.MsgStudentCreated, student))
}

// UpdateStudent applies a partial update from a JSON body
// @Summary Update a student
// @Description Updates only the fields present in the body. The control number cannot change.
// @Tags estudiantes
// @Accept json
// @Produce json
// @Param id path string true "Control number"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Estudiante actualizado correctamente"
// @Failure 400 {object} dto.ErrorResponse "JSON inválido or a null field"
// @Failure 404 {object} dto.ErrorResponse "Estudiante no encontrado"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /estudiantes/{id} [put]
func (c *StudentAPIController) UpdateStudent(ctx *gin.Context) {
	controlNumber := ctx.Param("id")

	// Existence is checked before the body is read, so a missing record is a 404 whatever was sent.
	if _, err := c.students.Get(ctx.Request.Context(), controlNumber); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	body, fields, ok := readJSONObject(ctx, false)
	if !ok {
		return
	}
	// A null would clear a NOT NULL column; absent keys are the way to leave a field alone.
	for _, name := range dto.UpdateStudentFields {
		if raw, present := fields[name]; present && string(raw) == "null" {
			_ = ctx.Error(apperrors.ErrValidationFailed)
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.MsgValidation,
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, name+" must not be null").WithField(name)))
			return
		}
	}

	var req dto.UpdateStudentRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		respondBindError(ctx, err)
		return
	}

	updated, err := c.students.Update(ctx.Request.Context(), controlNumber, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MsgStudentUpdated, updated))
}

// readJSONObject reads the body and requires a JSON object, returned both raw and by key.
// With requireFields an empty object is rejected too. On failure it has already written
// the 400 response.
func readJSONObject(ctx *gin.Context, requireFields bool) ([]byte, map[string]json.RawMessage, bool) {
	body, err := ctx.GetRawData()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("could not read request body"))
		return nil, nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("request body must be a JSON object"))
		return nil, nil, false
	}
	if requireFields && len(fields) == 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("request body is empty"))
		return nil, nil, false
	}

	return body, fields, true
}

// respondBindError writes a 400 with per-field details
func respondBindError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	msg := dto.MsgInvalidJSON
	if errors.As(err, &verrs) || errors.As(err, &typeErr) {
		msg = dto.MsgValidation
	}

	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg, dto.HandleValidationError(err)))
}
