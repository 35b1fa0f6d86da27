package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery parses an optional integer query parameter. A missing or empty
// parameter yields nil; a present but unparsable one is an error.
func intQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be an integer", name)
	}
	return &v, nil
}

// intQueryDefault parses an optional integer query parameter, falling back
// to def when absent.
func intQueryDefault(c *gin.Context, name string, def int) (int, error) {
	v, err := intQuery(c, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return def, nil
	}
	return *v, nil
}

// idParam parses the numeric identifier path segment.
func idParam(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("path parameter %q must be an integer id", raw)
	}
	return id, nil
}
