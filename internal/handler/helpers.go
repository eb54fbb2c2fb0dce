package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuscore/campuscore-api/internal/middleware"
	"github.com/campuscore/campuscore-api/internal/service"
	"github.com/campuscore/campuscore-api/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func principal(c *fiber.Ctx) middleware.Principal {
	p, _ := middleware.PrincipalFromCtx(c)
	return p
}

// statusForServiceError maps the service sentinel errors onto HTTP statuses.
// Unknown errors fall through to a logged 500.
func statusForServiceError(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrWrongCredentials):
		return fiber.StatusBadRequest, true
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAdminNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrTeacherNotFound),
		errors.Is(err, service.ErrBatchNotFound),
		errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrResultNotFound),
		errors.Is(err, service.ErrNoticeNotFound),
		errors.Is(err, service.ErrNotEnrolled):
		return fiber.StatusNotFound, true
	case errors.Is(err, service.ErrSecretIDTaken),
		errors.Is(err, service.ErrSubjectCodeTaken),
		errors.Is(err, service.ErrResultExists),
		errors.Is(err, service.ErrAlreadySubmitted):
		return fiber.StatusConflict, true
	case errors.Is(err, service.ErrBatchCompleted),
		errors.Is(err, service.ErrBatchTerminal),
		errors.Is(err, service.ErrBatchNotTerminal),
		errors.Is(err, service.ErrNotTeacher),
		errors.Is(err, service.ErrDueDatePast),
		errors.Is(err, service.ErrMarksExceedMaximum),
		errors.Is(err, service.ErrAssignmentClosed),
		errors.Is(err, service.ErrResultsNotPublished),
		errors.Is(err, service.ErrUploadMissing):
		return fiber.StatusBadRequest, true
	case errors.Is(err, service.ErrAccountInactive):
		return fiber.StatusForbidden, true
	case errors.Is(err, service.ErrUploadTooLarge):
		return fiber.StatusRequestEntityTooLarge, true
	case errors.Is(err, service.ErrUploadTypeNotAllowed):
		return fiber.StatusUnsupportedMediaType, true
	default:
		return 0, false
	}
}

func respondServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	}
	if status, ok := statusForServiceError(err); ok {
		return utils.SendError(c, status, err.Error())
	}

	logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("internal server error")

	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
