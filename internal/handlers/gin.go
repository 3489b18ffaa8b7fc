package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/middleware"
	"github.com/onskyline/science-interview/pkg/lambda"
)

// Paths the API endpoint is served on by the local server
const (
	NetlifyFunctionPath = "/.netlify/functions/api"
	APIPath             = "/api"
)

// GinHandler adapts APIHandler to gin
func (h *APIHandler) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			// One extra byte lets Handle detect an oversized body
			data, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxBodyBytes+1))
			if err != nil {
				logrus.WithError(err).WithField("request_id", c.GetString(middleware.RequestIDKey)).
					Warn("Failed to read request body")
				c.Data(http.StatusBadRequest, contentTypeText, []byte(MessageInvalidBody))
				return
			}
			body = data
		}

		req := &lambda.Request{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Headers:     flattenHeaders(c.Request.Header),
			QueryParams: flattenQuery(c),
			Body:        body,
			RequestID:   c.GetString(middleware.RequestIDKey),
		}

		resp := h.Handle(c.Request.Context(), req)
		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
	}
}

// RegisterRoutes mounts the API endpoint for every method so that non-POST
// requests reach Handle and receive 405
func (h *APIHandler) RegisterRoutes(router gin.IRoutes) {
	router.Any(NetlifyFunctionPath, h.GinHandler())
	router.Any(APIPath, h.GinHandler())
}

// NotFound answers unknown routes with a JSON error
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody("Not Found"))
}

func flattenHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for k, v := range header {
		out[k] = strings.Join(v, ",")
	}
	return out
}

func flattenQuery(c *gin.Context) map[string]string {
	query := c.Request.URL.Query()
	out := make(map[string]string, len(query))
	for k := range query {
		out[k] = query.Get(k)
	}
	return out
}
