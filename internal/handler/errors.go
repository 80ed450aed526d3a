package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"ContentPublisher/internal/domain"
)

// errorBody is the JSON shape of every non-200 response.
type errorBody struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

// mapError converts a handler error into a status code and response body.
func mapError(err error) (int, errorBody) {
	var (
		verr *domain.ValidationError
		gerr *domain.GenerationError
		herr *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorBody{Error: verr.Message}
	case errors.As(err, &gerr):
		return http.StatusInternalServerError, errorBody{Error: gerr.Message, Raw: gerr.Raw}
	case errors.As(err, &herr):
		return herr.Code, errorBody{Error: fmt.Sprint(herr.Message)}
	default:
		return http.StatusInternalServerError, errorBody{Error: err.Error()}
	}
}

func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}
