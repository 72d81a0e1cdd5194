package dto

import "time"

// Messages returned by the JSON API
const (
	MsgInvalidJSON     = "JSON inválido"
	MsgStudentCreated  = "Estudiante agregado correctamente"
	MsgStudentUpdated  = "Estudiante actualizado correctamente"
	MsgStudentNotFound = "Estudiante no encontrado"
	MsgStudentExists   = "El número de control ya existe"
	MsgValidation      = "Datos inválidos"
	MsgInternalError   = "Error interno del servidor"
)

// APIResponse is the success envelope of the JSON API
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Msg       string      `json:"msg" example:"Estudiante agregado correctamente"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Msg:       msg,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// HealthResponse reports liveness and store reachability
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}
