package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API reference page, which loads static/openapi.json.
type OpenAPIHandler struct {
	Handler
	page string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		page:    "static/openapi.html",
	}
}

// ServeOpenAPIUI reads the page on every request so doc edits show up without a restart.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(h.page)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(page)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
