package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the error half of the API response contract. Data is always
// null here; Code is present only for machine-readable business errors.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   string  `json:"error"`
	Code    *string `json:"code,omitempty"`
}

func Write(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Error: message})
}

// WriteCode attaches a stable business code alongside the human message.
func WriteCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{Error: message, Code: &code})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func BadRequestCode(c *gin.Context, code, message string) {
	WriteCode(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, message)
}

func NotFoundCode(c *gin.Context, code, message string) {
	WriteCode(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	WriteCode(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, message string) {
	Write(c, http.StatusInternalServerError, message)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, message)
}
