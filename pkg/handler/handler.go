package handler

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"taxifleet/config"
	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/service"
	"taxifleet/web"
)

const sessionCookieName = "taxifleet_session"

type Handler struct {
	svc service.IServiceManager
	log logger.ILogger
}

func New(svc service.IServiceManager, log logger.ILogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// NewRouter wires middleware, templates, static files and routes.
func NewRouter(cfg config.Config, svc service.IServiceManager, log logger.ILogger) (*gin.Engine, error) {
	h := New(svc, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID(), accessLog(log))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SessionSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	h.register(r)
	return r, nil
}

func (h *Handler) register(r *gin.Engine) {
	r.NoRoute(h.notFound)

	accounts := r.Group("/accounts")
	{
		accounts.GET("/login/", h.LoginForm)
		accounts.POST("/login/", h.Login)
		accounts.GET("/logout/", h.Logout)
		accounts.POST("/logout/", h.Logout)
	}

	app := r.Group("/", h.requireLogin)
	{
		app.GET("/", h.Index)

		app.GET("/manufacturers/", h.ManufacturerList)
		app.GET("/manufacturers/create/", h.ManufacturerCreateForm)
		app.POST("/manufacturers/create/", h.ManufacturerCreate)
		app.GET("/manufacturers/:id/update/", h.ManufacturerUpdateForm)
		app.POST("/manufacturers/:id/update/", h.ManufacturerUpdate)
		app.GET("/manufacturers/:id/delete/", h.ManufacturerDeleteConfirm)
		app.POST("/manufacturers/:id/delete/", h.ManufacturerDelete)

		app.GET("/cars/", h.CarList)
		app.GET("/cars/create/", h.CarCreateForm)
		app.POST("/cars/create/", h.CarCreate)
		app.GET("/cars/:id/", h.CarDetail)
		app.GET("/cars/:id/update/", h.CarUpdateForm)
		app.POST("/cars/:id/update/", h.CarUpdate)
		app.GET("/cars/:id/delete/", h.CarDeleteConfirm)
		app.POST("/cars/:id/delete/", h.CarDelete)
		app.POST("/cars/:id/assign/", h.AssignMe)
		app.POST("/cars/:id/unassign/", h.UnassignMe)

		app.GET("/drivers/", h.DriverList)
		app.GET("/drivers/create/", h.DriverCreateForm)
		app.POST("/drivers/create/", h.DriverCreate)
		app.GET("/drivers/:id/", h.DriverDetail)
		app.GET("/drivers/:id/update/", h.LicenseUpdateForm)
		app.POST("/drivers/:id/update/", h.LicenseUpdate)
		app.GET("/drivers/:id/delete/", h.DriverDeleteConfirm)
		app.POST("/drivers/:id/delete/", h.DriverDelete)
	}
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = currentDriver(c)
	c.HTML(status, name, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", gin.H{"title": "Not found"})
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.Error("request failed",
		logger.Error(err),
		logger.String("request_id", c.GetString(ctxKeyRequestID)),
		logger.String("path", c.Request.URL.Path),
	)
	h.render(c, http.StatusInternalServerError, "500.html", gin.H{"title": "Server error"})
}

// fail renders 404 for missing records and 500 for everything else.
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.notFound(c)
		return
	}
	h.serverError(c, err)
}

// pathID parses the :id route parameter. ok is false when the id cannot
// name a record; the 404 page has then been rendered.
func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, ok := models.ParseID(c.Param("id"))
	if !ok {
		h.notFound(c)
		return 0, false
	}
	return id, true
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
