package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/service"
)

type FeedHandler struct {
	svc service.FeedService
}

func NewFeedHandler(svc service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

func (h *FeedHandler) Feed(c echo.Context) error {
	rows, err := h.svc.Feed(c.Request().Context(), c.QueryParam("filter"), c.QueryParam("sort"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch feed"))
	}
	resp := make([]ActResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toActResponse(&rows[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
