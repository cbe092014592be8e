package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aixiv-api/internal/middleware"
	"github.com/noah-isme/aixiv-api/pkg/clientip"
	appErrors "github.com/noah-isme/aixiv-api/pkg/errors"
)

func uploaderFromContext(c *gin.Context) string {
	return c.GetString(middleware.ContextUploaderKey)
}

func clientIPFromContext(c *gin.Context) string {
	if ip := c.GetString(middleware.ContextClientIPKey); ip != "" {
		return ip
	}
	return clientip.Resolve(c.Request)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.InvalidField(name, "numeric", "", "invalid "+name)
	}
	return id, nil
}
