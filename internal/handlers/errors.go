package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/idolyst/mentorship-api/internal/httperr"
)

// respondBusiness maps business error codes onto HTTP statuses. Gateway and
// configuration failures are deliberately flattened to a generic payment
// error; the adapter already logged the provider detail.
func respondBusiness(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch be.Code {
	case "session_not_found", "mentor_not_found", "session_type_not_found":
		httperr.NotFound(c, be.Code, "Not found.")

	case "slot_unavailable":
		httperr.Conflict(c, be.Code, "This time slot is no longer available. Please choose another time.")

	case "unauthorized_actor":
		httperr.Forbidden(c, be.Code, "You are not allowed to perform this action on the session.")

	case "invalid_transition",
		"session_not_started",
		"session_already_started",
		"cancellation_reason_required",
		"validation_error",
		"invalid_amount",
		"invalid_provider":
		httperr.BadRequest(c, be.Code, "Invalid request.")

	case "payment_not_configured", "gateway_error", "authentication_error":
		httperr.Internal(c, "payment_error", "Payment service error.")

	default:
		httperr.Internal(c, be.Code, "Something went wrong.")
	}
}
