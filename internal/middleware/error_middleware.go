package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/estudiantes/internal/app/models/dto"
	"github.com/yigit/estudiantes/internal/pkg/apperrors"
)

// HandleAPIError maps domain errors to JSON responses. The error is also attached to the
// context so the request logger records it.
func HandleAPIError(c *gin.Context, err error) {
	_ = c.Error(err)

	var status int
	var msg string
	var detail *dto.ErrorDetail

	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		status, msg = http.StatusNotFound, dto.MsgStudentNotFound
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, msg = http.StatusNotFound, dto.MsgStudentNotFound
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		status, msg = http.StatusConflict, dto.MsgStudentExists
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Control number already exists")
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, msg = http.StatusBadRequest, dto.MsgValidation
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		status, msg = http.StatusBadRequest, dto.MsgInvalidJSON
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidJSON, err.Error())
	default:
		status, msg = http.StatusInternalServerError, dto.MsgInternalError
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	c.JSON(status, dto.NewErrorResponse(msg, detail))
}
