package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bigimanishi-bit/tarot-app-sub000/internal/app"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/domain"
)

type Handler struct {
	svc *app.ReadingService
}

func NewHandler(svc *app.ReadingService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/cards", h.CardsOfDay)
	e.POST("/v1/normalize", h.Normalize)
	e.POST("/v1/reading", h.Reading)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CardsOfDay(c echo.Context) error {
	identity := c.QueryParam("id")
	if identity == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id is required"})
	}

	purpose := c.QueryParam("purpose")
	if purpose == "" {
		purpose = "daily"
	}

	n := 3
	if raw := c.QueryParam("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "n must be an integer between 1 and 10"})
		}
		n = parsed
	}

	res, err := h.svc.CardsOfDay(identity, purpose, n)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, CardsResponse{Cards: res.Cards, Seed: res.Seed})
}

func (h *Handler) Normalize(c echo.Context) error {
	var req NormalizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	spread := h.svc.Normalize(req.Text)
	return c.JSON(http.StatusOK, NormalizeResponse{
		SpreadKind:   string(spread.Kind),
		RenderedText: spread.Rendered,
	})
}

func (h *Handler) Reading(c echo.Context) error {
	var req ReadingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if len(req.Text) > 4000 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text must be at most 4000 bytes"})
	}

	res, err := h.svc.Reading(c.Request().Context(), app.ReadingRequest{
		SpreadText:   req.Text,
		Mode:         app.ParseMode(req.Mode),
		Theme:        req.Theme,
		Context:      req.Context,
		StrictFormat: req.StrictFormat,
	})
	if err != nil {
		return mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)

	return c.JSON(http.StatusOK, ReadingResponse{
		Text:       res.Text,
		SpreadKind: string(res.SpreadKind),
		Meta: MetaResp{
			Model:     res.Model,
			RequestID: requestID,
			LatencyMS: res.LatencyMS,
		},
	})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrInvalidDrawCount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrEmptyCompletion):
		slog.Error("generation failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "generation failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
