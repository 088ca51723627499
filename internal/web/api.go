package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/gin-gonic/gin"
)

type catalogHandler struct {
	catalog catalog.Catalog
	logger  logging.Logger
}

func (h *catalogHandler) list(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.catalog.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *catalogHandler) get(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *catalogHandler) fail(c *gin.Context, err error) {
	status, msg := catalogStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "catalog request failed", "error", err.Error())
	}
	c.JSON(status, gin.H{"error": msg})
}

func catalogStatus(err error) (int, string) {
	if errors.Is(err, catalog.ErrNotFound) {
		return http.StatusNotFound, "Pokemon not found"
	}
	return http.StatusBadGateway, "Catalog unavailable"
}

// pageParams reads optional limit and offset query values.
func pageParams(c *gin.Context) (int, int, bool) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return 0, 0, false
	}
	offset, ok := intQuery(c, "offset")
	if !ok {
		return 0, 0, false
	}
	limit, offset = catalog.ClampPage(limit, offset)
	return limit, offset, true
}

func intQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
