package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifleet/pkg/forms"
	"taxifleet/pkg/models"
	"taxifleet/pkg/pagination"
)

const manufacturerListURL = "/manufacturers/"

func (h *Handler) ManufacturerList(c *gin.Context) {
	list, page, err := h.svc.Manufacturer().List(c.Request.Context(), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "manufacturer_list.html", gin.H{
		"title":             "Manufacturers",
		"manufacturer_list": list,
		"page_obj":          page,
		"is_paginated":      page.IsPaginated(),
	})
}

func (h *Handler) ManufacturerCreateForm(c *gin.Context) {
	h.renderManufacturerForm(c, &forms.ManufacturerForm{}, nil, viewTypeCreate)
}

func (h *Handler) ManufacturerCreate(c *gin.Context) {
	var form forms.ManufacturerForm
	_ = c.ShouldBind(&form)

	m, errs := form.Validate()
	if errs.Any() {
		h.renderManufacturerForm(c, &form, errs, viewTypeCreate)
		return
	}

	if _, err := h.svc.Manufacturer().Create(c.Request.Context(), m); err != nil {
		if derrs, ok := duplicateErrors(err); ok {
			h.renderManufacturerForm(c, &form, derrs, viewTypeCreate)
			return
		}
		h.serverError(c, err)
		return
	}
	redirect(c, manufacturerListURL)
}

func (h *Handler) ManufacturerUpdateForm(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	m, err := h.svc.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	form := forms.ManufacturerFormFrom(m)
	h.renderManufacturerForm(c, &form, nil, viewTypeUpdate)
}

func (h *Handler) ManufacturerUpdate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.svc.Manufacturer().Get(ctx, id); err != nil {
		h.fail(c, err)
		return
	}

	var form forms.ManufacturerForm
	_ = c.ShouldBind(&form)

	m, errs := form.Validate()
	if errs.Any() {
		h.renderManufacturerForm(c, &form, errs, viewTypeUpdate)
		return
	}

	if _, err := h.svc.Manufacturer().Update(ctx, id, m); err != nil {
		if derrs, ok := duplicateErrors(err); ok {
			h.renderManufacturerForm(c, &form, derrs, viewTypeUpdate)
			return
		}
		h.fail(c, err)
		return
	}
	redirect(c, manufacturerListURL)
}

func (h *Handler) ManufacturerDeleteConfirm(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	m, err := h.svc.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "delete_record.html",
		deleteContext(models.ManufacturerVerboseName, m.Name+" "+m.Country, manufacturerListURL))
}

// ManufacturerDelete removes the manufacturer and, by cascade, its cars.
func (h *Handler) ManufacturerDelete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Manufacturer().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, manufacturerListURL)
}

func (h *Handler) renderManufacturerForm(c *gin.Context, form *forms.ManufacturerForm, errs forms.Errors, viewType string) {
	data := formContext(form, errs, viewType)
	data["title"] = "Manufacturer"
	h.render(c, http.StatusOK, "manufacturer_form.html", data)
}
