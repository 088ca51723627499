package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/gate"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"add":   func(a, b int) int { return a + b },
	"sub":   func(a, b int) int { return a - b },
	"upper": strings.ToUpper,
	"dict":  dict,
}

// dict builds a map from alternating keys and values so templates can pass
// several values to a partial.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

type pageHandler struct {
	catalog catalog.Catalog
	logger  logging.Logger
}

func (h *pageHandler) login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Next":      gate.SafeNext(c.Query("next"), HomePagePath),
		"LoginPath": common.LoginPath,
	})
}

func (h *pageHandler) list(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		limit, offset = catalog.ClampPage(0, 0)
	}

	page, err := h.catalog.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "list.html", gin.H{
		"User":       gate.CurrentIdentity(c),
		"Page":       page,
		"Limit":      limit,
		"Offset":     offset,
		"HasPrev":    offset > 0,
		"HasNext":    page.Next != nil,
		"LogoutPath": common.LogoutPath,
	})
}

func (h *pageHandler) detail(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "detail.html", gin.H{
		"User":       gate.CurrentIdentity(c),
		"Pokemon":    p,
		"LogoutPath": common.LogoutPath,
	})
}

func (h *pageHandler) fail(c *gin.Context, err error) {
	status, msg := catalogStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "catalog page failed", "error", err.Error())
	}
	c.HTML(status, "error.html", gin.H{
		"User":       gate.CurrentIdentity(c),
		"Status":     status,
		"Message":    msg,
		"LogoutPath": common.LogoutPath,
	})
}
