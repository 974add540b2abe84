package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifleet/pkg/forms"
	"taxifleet/pkg/models"
	"taxifleet/pkg/pagination"
	"taxifleet/service"
)

const carListURL = "/cars/"

func carDetailURL(id int64) string { return fmt.Sprintf("/cars/%d/", id) }

func (h *Handler) CarList(c *gin.Context) {
	cars, page, err := h.svc.Car().List(c.Request.Context(), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "car_list.html", gin.H{
		"title":        "Cars",
		"car_list":     cars,
		"page_obj":     page,
		"is_paginated": page.IsPaginated(),
	})
}

func (h *Handler) CarDetail(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	car, err := h.svc.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "car_detail.html", gin.H{
		"title":       car.Model,
		"car":         car,
		"is_assigned": car.HasDriver(currentDriver(c).ID),
	})
}

func (h *Handler) CarCreateForm(c *gin.Context) {
	var form forms.CarForm
	if err := h.loadCarChoices(c.Request.Context(), &form); err != nil {
		h.serverError(c, err)
		return
	}
	h.renderCarForm(c, &form, nil, viewTypeCreate)
}

func (h *Handler) CarCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var form forms.CarForm
	_ = c.ShouldBind(&form)
	if err := h.loadCarChoices(ctx, &form); err != nil {
		h.serverError(c, err)
		return
	}

	in, errs := form.Validate()
	if errs.Any() {
		h.renderCarForm(c, &form, errs, viewTypeCreate)
		return
	}

	if _, err := h.svc.Car().Create(ctx, in); err != nil {
		h.carWriteFailed(c, &form, err, viewTypeCreate)
		return
	}
	redirect(c, carListURL)
}

func (h *Handler) CarUpdateForm(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	car, err := h.svc.Car().Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	form := forms.CarFormFrom(car)
	if err := h.loadCarChoices(ctx, &form); err != nil {
		h.serverError(c, err)
		return
	}
	h.renderCarForm(c, &form, nil, viewTypeUpdate)
}

func (h *Handler) CarUpdate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.svc.Car().Get(ctx, id); err != nil {
		h.fail(c, err)
		return
	}

	var form forms.CarForm
	_ = c.ShouldBind(&form)
	if err := h.loadCarChoices(ctx, &form); err != nil {
		h.serverError(c, err)
		return
	}

	in, errs := form.Validate()
	if errs.Any() {
		h.renderCarForm(c, &form, errs, viewTypeUpdate)
		return
	}

	if _, err := h.svc.Car().Update(ctx, id, in); err != nil {
		h.carWriteFailed(c, &form, err, viewTypeUpdate)
		return
	}
	redirect(c, carListURL)
}

func (h *Handler) CarDeleteConfirm(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	car, err := h.svc.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "delete_record.html",
		deleteContext(models.CarVerboseName, car.Model, carDetailURL(car.ID)))
}

func (h *Handler) CarDelete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Car().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, carListURL)
}

// AssignMe adds the logged-in driver to the car.
func (h *Handler) AssignMe(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Car().AssignDriver(c.Request.Context(), id, currentDriver(c).ID); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, carDetailURL(id))
}

// UnassignMe removes the logged-in driver from the car.
func (h *Handler) UnassignMe(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Car().UnassignDriver(c.Request.Context(), id, currentDriver(c).ID); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, carDetailURL(id))
}

func (h *Handler) loadCarChoices(ctx context.Context, form *forms.CarForm) error {
	manufacturers, err := h.svc.Manufacturer().All(ctx)
	if err != nil {
		return err
	}
	drivers, err := h.svc.Driver().All(ctx)
	if err != nil {
		return err
	}
	form.WithChoices(manufacturers, drivers)
	return nil
}

// carWriteFailed handles a storage error after the form validated. A
// manufacturer or driver deleted in between shows up as ErrNotFound.
func (h *Handler) carWriteFailed(c *gin.Context, form *forms.CarForm, err error, viewType string) {
	if errors.Is(err, service.ErrNotFound) {
		errs := forms.Errors{}
		errs.Add(forms.NonFieldErrors, "The selected manufacturer or drivers no longer exist.")
		h.renderCarForm(c, form, errs, viewType)
		return
	}
	h.serverError(c, err)
}

func (h *Handler) renderCarForm(c *gin.Context, form *forms.CarForm, errs forms.Errors, viewType string) {
	data := formContext(form, errs, viewType)
	data["title"] = "Car"
	h.render(c, http.StatusOK, "car_form.html", data)
}
