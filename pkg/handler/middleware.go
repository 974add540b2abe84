package handler

import (
	"errors"
	"net/url"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/service"
)

const (
	ctxKeyRequestID = "request_id"
	ctxKeyDriver    = "driver"

	headerRequestID = "X-Request-ID"
	loginURL        = "/accounts/login/"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func accessLog(log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.String("request_id", c.GetString(ctxKeyRequestID)),
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= 500 {
			log.Error("http request", fields...)
			return
		}
		log.Info("http request", fields...)
	}
}

// requireLogin loads the session's driver or redirects to the login page
// with the requested path in ?next=.
func (h *Handler) requireLogin(c *gin.Context) {
	session := sessions.Default(c)

	id := sessionDriverID(session)
	if id == 0 {
		redirectToLogin(c)
		return
	}

	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		// The driver was deleted while logged in.
		session.Clear()
		_ = session.Save()
		redirectToLogin(c)
		return
	}
	if err != nil {
		h.serverError(c, err)
		c.Abort()
		return
	}

	c.Set(ctxKeyDriver, d)
	c.Next()
}

func redirectToLogin(c *gin.Context) {
	redirect(c, loginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

func currentDriver(c *gin.Context) *models.Driver {
	v, ok := c.Get(ctxKeyDriver)
	if !ok {
		return nil
	}
	d, _ := v.(*models.Driver)
	return d
}
