package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifleet/pkg/forms"
	"taxifleet/pkg/models"
	"taxifleet/pkg/pagination"
)

const driverListURL = "/drivers/"

func driverDetailURL(id int64) string { return fmt.Sprintf("/drivers/%d/", id) }

func (h *Handler) DriverList(c *gin.Context) {
	drivers, page, err := h.svc.Driver().List(c.Request.Context(), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "driver_list.html", gin.H{
		"title":        "Drivers",
		"driver_list":  drivers,
		"page_obj":     page,
		"is_paginated": page.IsPaginated(),
	})
}

func (h *Handler) DriverDetail(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "driver_detail.html", gin.H{
		"title":  d.Username,
		"driver": d,
	})
}

func (h *Handler) DriverCreateForm(c *gin.Context) {
	h.renderDriverForm(c, &forms.DriverCreationForm{}, nil)
}

// DriverCreate registers a driver and shows its detail page.
func (h *Handler) DriverCreate(c *gin.Context) {
	var form forms.DriverCreationForm
	_ = c.ShouldBind(&form)

	in, errs := form.Validate()
	if errs.Any() {
		h.renderDriverForm(c, &form, errs)
		return
	}

	d, err := h.svc.Driver().Create(c.Request.Context(), in)
	if err != nil {
		if derrs, ok := duplicateErrors(err); ok {
			h.renderDriverForm(c, &form, derrs)
			return
		}
		h.serverError(c, err)
		return
	}
	redirect(c, driverDetailURL(d.ID))
}

func (h *Handler) LicenseUpdateForm(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	form := forms.LicenseUpdateFormFrom(d)
	h.renderLicenseForm(c, d, &form, nil)
}

func (h *Handler) LicenseUpdate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	d, err := h.svc.Driver().Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	var form forms.LicenseUpdateForm
	_ = c.ShouldBind(&form)

	license, errs := form.Validate()
	if errs.Any() {
		h.renderLicenseForm(c, d, &form, errs)
		return
	}

	if err := h.svc.Driver().UpdateLicense(ctx, id, license); err != nil {
		if derrs, ok := duplicateErrors(err); ok {
			h.renderLicenseForm(c, d, &form, derrs)
			return
		}
		h.fail(c, err)
		return
	}
	redirect(c, driverDetailURL(id))
}

func (h *Handler) DriverDeleteConfirm(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "delete_record.html",
		deleteContext(models.DriverVerboseName, d.Username, driverDetailURL(d.ID)))
}

func (h *Handler) DriverDelete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Driver().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, driverListURL)
}

func (h *Handler) renderDriverForm(c *gin.Context, form *forms.DriverCreationForm, errs forms.Errors) {
	data := formContext(form, errs, viewTypeCreate)
	data["title"] = "Create driver"
	h.render(c, http.StatusOK, "driver_form.html", data)
}

func (h *Handler) renderLicenseForm(c *gin.Context, d *models.Driver, form *forms.LicenseUpdateForm, errs forms.Errors) {
	data := formContext(form, errs, viewTypeUpdate)
	data["title"] = "Update license"
	data["driver"] = d
	h.render(c, http.StatusOK, "update_license.html", data)
}
