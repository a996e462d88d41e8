// internal/server/static.go
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "mergington-activities/internal/common/errors"
)

// staticFiles serves files from dir under a *filepath route. Files are
// written directly with http.ServeContent, so /static/index.html answers
// 200 instead of being redirected to the directory.
func staticFiles(dir string) gin.HandlerFunc {
	root := http.Dir(dir)
	return func(c *gin.Context) {
		name := c.Param("filepath")
		if name == "" || strings.HasSuffix(name, "/") {
			name += "index.html"
		}

		f, err := root.Open(name)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, apperrors.ErrorResponse{Detail: "Not Found"})
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			c.AbortWithStatusJSON(http.StatusNotFound, apperrors.ErrorResponse{Detail: "Not Found"})
			return
		}
		http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	}
}
