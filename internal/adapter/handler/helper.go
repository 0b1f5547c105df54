package handler

import (
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/errors"
	"github.com/johnquangdev/meeting-recovery/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	httpmw "github.com/johnquangdev/meeting-recovery/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/johnquangdev/meeting-recovery/internal/usecase/errors"
	pkgai "github.com/johnquangdev/meeting-recovery/pkg/ai"
)

// getRequestID reads the id set by the request id middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// currentUser returns the caller set by the auth middleware
func currentUser(c echo.Context) (uuid.UUID, error) {
	id, ok := httpmw.UserID(c)
	if !ok {
		return uuid.Nil, errors.ErrUnauthenticated()
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs the struct validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// parseID parses a uuid path parameter
func parseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid " + name)
	}
	return id, nil
}

// HandleSuccess writes a success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(status, data)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(c, err)
	if appErr.Timestamp.IsZero() {
		appErr.Timestamp = time.Now().UTC()
	}

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	body := common.ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code.String(),
		Timestamp: appErr.Timestamp,
	}
	for k, v := range appErr.Details {
		if k == "paymentUrl" {
			body.NeedsPayment = true
			body.PaymentURL = v
			continue
		}
		if body.Details == nil {
			body.Details = make(map[string]string, len(appErr.Details))
		}
		body.Details[k] = v
	}

	return c.JSON(appErr.HTTPCode, body)
}

// ErrorHandler returns an echo.HTTPErrorHandler rendering the same body as HandleError,
// so errors raised by middleware look like errors raised by handlers
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if herr := HandleError(logger, c, err); herr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(herr))
		}
	}
}

// toAppError maps lower layer errors onto the HTTP taxonomy.
// Anything unrecognised is a 500 whose cause never reaches the client.
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var validationErr *usecaseErrors.ValidationError
	if stdErrors.As(err, &validationErr) {
		e := errors.ErrInvalidArgument(validationErr.Error())
		if validationErr.Field != "" {
			e = e.WithDetail("field", validationErr.Field)
		}
		return e
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisFailed):
		if pkgai.IsKind(err, pkgai.KindTimeout) {
			return errors.ErrAITimeout(err)
		}
		return errors.ErrAIAnalysisFailed(err)
	case stdErrors.Is(err, entities.ErrInsufficientCredits):
		return errors.ErrPaymentRequired("")
	case stdErrors.Is(err, entities.ErrUserNotFound):
		return errors.ErrUserNotFound()
	case stdErrors.Is(err, entities.ErrInvalidLicenseKey):
		return errors.ErrLicenseKeyInvalid()
	case stdErrors.Is(err, entities.ErrLicenseKeyNotFound):
		return errors.ErrLicenseKeyNotFound()
	case stdErrors.Is(err, entities.ErrLicenseKeyRedeemed):
		return errors.ErrLicenseKeyRedeemed()
	case stdErrors.Is(err, entities.ErrInvalidMode),
		stdErrors.Is(err, entities.ErrInvalidContentKind),
		stdErrors.Is(err, entities.ErrEmptyContent),
		stdErrors.Is(err, entities.ErrUnknownMentorSession),
		stdErrors.Is(err, entities.ErrInvalidMentorStep):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(c.Param("id"))
	case stdErrors.Is(err, entities.ErrTagNotFound):
		return errors.ErrTagNotFound()
	case stdErrors.Is(err, entities.ErrTagExists):
		return errors.ErrAlreadyExists("Tag")
	case stdErrors.Is(err, entities.ErrMentorSessionNotFound):
		return errors.ErrMentorSessionNotFound(c.Param("id"))
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("Resource")
	case stdErrors.Is(err, usecaseErrors.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	}
	return errors.ErrInternal(err)
}

func fromHTTPError(httpErr *echo.HTTPError) errors.AppError {
	switch httpErr.Code {
	case http.StatusNotFound:
		return errors.ErrNotFound("Route")
	case http.StatusMethodNotAllowed:
		return errors.AppError{
			HTTPCode: http.StatusMethodNotAllowed,
			Code:     errors.ErrorCode_INVALID_ARGUMENT,
			Message:  "Method not allowed",
		}
	case http.StatusRequestEntityTooLarge:
		return errors.AppError{
			Raw:      httpErr,
			HTTPCode: http.StatusRequestEntityTooLarge,
			Code:     errors.ErrorCode_INVALID_PAYLOAD,
			Message:  "Request body too large",
		}
	case http.StatusUnauthorized:
		return errors.ErrUnauthenticated()
	case http.StatusTooManyRequests:
		return errors.ErrRateLimited()
	}
	if httpErr.Code >= http.StatusBadRequest && httpErr.Code < http.StatusInternalServerError {
		return errors.AppError{
			Raw:      httpErr,
			HTTPCode: httpErr.Code,
			Code:     errors.ErrorCode_INVALID_ARGUMENT,
			Message:  http.StatusText(httpErr.Code),
		}
	}
	return errors.ErrInternal(httpErr)
}
