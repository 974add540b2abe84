package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"taxifleet/pkg/forms"
	"taxifleet/pkg/logger"
	"taxifleet/service"
)

const msgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

func (h *Handler) LoginForm(c *gin.Context) {
	h.renderLogin(c, &forms.LoginForm{}, nil, c.Query("next"))
}

func (h *Handler) Login(c *gin.Context) {
	var form forms.LoginForm
	_ = c.ShouldBind(&form)
	next := c.PostForm("next")

	if errs := form.Validate(); errs.Any() {
		h.renderLogin(c, &form, errs, next)
		return
	}

	d, err := h.svc.Driver().Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.log.Warning("failed login", logger.String("username", form.Username))
		errs := forms.Errors{}
		errs.Add(forms.NonFieldErrors, msgInvalidLogin)
		h.renderLogin(c, &form, errs, next)
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	if err := login(sessions.Default(c), d.ID); err != nil {
		h.serverError(c, err)
		return
	}
	redirect(c, safeNext(next))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := logout(sessions.Default(c)); err != nil {
		h.serverError(c, err)
		return
	}
	redirect(c, loginURL)
}

func (h *Handler) renderLogin(c *gin.Context, form *forms.LoginForm, errs forms.Errors, next string) {
	data := formContext(form, errs, viewTypeCreate)
	data["title"] = "Login"
	data["next"] = next
	h.render(c, http.StatusOK, "login.html", data)
}

// safeNext only allows local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
