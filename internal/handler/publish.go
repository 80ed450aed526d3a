package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"ContentPublisher/internal/category"
	"ContentPublisher/internal/domain"
)

// Publisher runs one publish request for a category.
type Publisher interface {
	Publish(ctx context.Context, cat category.Category, req domain.PublishRequest) (domain.PublishResult, error)
}

// CorrectionSender mails the corrected link to audience lists.
type CorrectionSender interface {
	Send(ctx context.Context, req domain.CorrectionRequest) (domain.CorrectionResult, error)
}

// PublishHandler serves one content category.
type PublishHandler struct {
	publisher Publisher
	category  category.Category
}

// NewPublishHandler binds a publisher to a category.
func NewPublishHandler(p Publisher, cat category.Category) *PublishHandler {
	return &PublishHandler{publisher: p, category: cat}
}

// Handle decodes the dashboard form and returns the publish result.
func (h *PublishHandler) Handle(c echo.Context) error {
	var req domain.PublishRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.publisher.Publish(detach(c), h.category, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// CorrectionHandler serves the correction mailing.
type CorrectionHandler struct {
	sender CorrectionSender
}

// NewCorrectionHandler creates a correction handler.
func NewCorrectionHandler(s CorrectionSender) *CorrectionHandler {
	return &CorrectionHandler{sender: s}
}

func (h *CorrectionHandler) Handle(c echo.Context) error {
	var req domain.CorrectionRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.sender.Send(detach(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// detach keeps request values but ignores client disconnects, so a page that
// went live still gets its campaigns. Outbound clients carry their own timeouts.
func detach(c echo.Context) context.Context {
	return context.WithoutCancel(c.Request().Context())
}

// decodeJSON reads the body as JSON whatever Content-Type the client sent.
func decodeJSON(c echo.Context, dst any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "Invalid JSON body: %v", err)
	}
	return nil
}

// postOnly answers preflight and rejects everything but POST.
func postOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch c.Request().Method {
		case http.MethodPost:
			return next(c)
		case http.MethodOptions:
			return c.NoContent(http.StatusNoContent)
		default:
			return c.JSON(http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
		}
	}
}
