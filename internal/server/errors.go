package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/backup"
	companydomain "github.com/quisqueyalabs/contalibro/internal/company/domain"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	taxcalcdomain "github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	thirdpartydomain "github.com/quisqueyalabs/contalibro/internal/thirdparty/domain"
)

// Messages are user-facing and shown verbatim in the UI, hence Spanish.
type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware turns the last gin error into a JSON response
// when no handler wrote one.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, invoicedomain.ErrDuplicateInvoice):
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_invoice",
			Message: "ya existe una factura con ese número para este RNC",
		}
	case errors.Is(err, companydomain.ErrDuplicateRNC):
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_rnc",
			Message: "ya existe una empresa con ese RNC",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "no encontrado",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: validationMessage(err),
		}
	case errors.Is(err, backup.ErrNotSQLite):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_backend",
			Message: "los respaldos requieren la base de datos local",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "error interno del servidor",
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, taxcalcdomain.ErrNotFound),
		errors.Is(err, backup.ErrBackupNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return backend.IsNotFound(err)
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, companydomain.ErrInvalidName),
		errors.Is(err, companydomain.ErrInvalidRNC),
		errors.Is(err, companydomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidCompany),
		errors.Is(err, invoicedomain.ErrInvalidKind),
		errors.Is(err, invoicedomain.ErrInvalidNumber),
		errors.Is(err, invoicedomain.ErrInvalidRNC),
		errors.Is(err, invoicedomain.ErrInvalidDate),
		errors.Is(err, invoicedomain.ErrInvalidExchangeRate),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, taxcalcdomain.ErrInvalidCompany),
		errors.Is(err, taxcalcdomain.ErrInvalidName),
		errors.Is(err, taxcalcdomain.ErrInvalidPeriod),
		errors.Is(err, taxcalcdomain.ErrInvalidRate),
		errors.Is(err, taxcalcdomain.ErrInvalidID),
		errors.Is(err, thirdpartydomain.ErrInvalidSearchBy),
		errors.Is(err, thirdpartydomain.ErrInvalidRNC):
		return true
	default:
		return false
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, companydomain.ErrInvalidRNC),
		errors.Is(err, invoicedomain.ErrInvalidRNC),
		errors.Is(err, thirdpartydomain.ErrInvalidRNC):
		return "el RNC debe tener 9 u 11 dígitos"
	case errors.Is(err, invoicedomain.ErrInvalidExchangeRate):
		return "la tasa de cambio debe ser mayor que cero"
	case errors.Is(err, invoicedomain.ErrInvalidKind):
		return "el tipo de factura debe ser emitida o gasto"
	case errors.Is(err, taxcalcdomain.ErrInvalidRate):
		return "la tasa de retención debe estar entre 0 y 1"
	case errors.Is(err, taxcalcdomain.ErrInvalidPeriod):
		return "el período no es válido"
	default:
		return "solicitud no válida"
	}
}
