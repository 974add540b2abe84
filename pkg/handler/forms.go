package handler

import (
	"github.com/gin-gonic/gin"

	"taxifleet/pkg/forms"
	"taxifleet/storage"
)

const (
	viewTypeCreate = "create"
	viewTypeUpdate = "update"
)

// formContext is the template data shared by every form page. view_type
// lets one template tell create and update apart.
func formContext(f forms.Form, errs forms.Errors, viewType string) gin.H {
	return gin.H{
		"fields":           forms.Render(f, errs),
		"non_field_errors": errs.NonField(),
		"view_type":        viewType,
	}
}

// deleteContext is the template data of delete_record.html.
func deleteContext(verboseName, label, cancelURL string) gin.H {
	return gin.H{
		"title":              "Delete " + verboseName,
		"model_verbose_name": verboseName,
		"object_label":       label,
		"cancel_url":         cancelURL,
	}
}

var duplicateFields = map[string]struct{ field, msg string }{
	storage.ConstraintManufacturerName: {"name", "Manufacturer with this Name already exists."},
	storage.ConstraintDriverUsername:   {"username", "A user with that username already exists."},
	storage.ConstraintDriverLicense:    {"license_number", "Driver with this License number already exists."},
}

// duplicateErrors turns a unique violation into a field error.
func duplicateErrors(err error) (forms.Errors, bool) {
	constraint, ok := storage.DuplicateConstraint(err)
	if !ok {
		return nil, false
	}
	errs := forms.Errors{}
	if d, known := duplicateFields[constraint]; known {
		errs.Add(d.field, d.msg)
	} else {
		errs.Add(forms.NonFieldErrors, "A record with these values already exists.")
	}
	return errs, true
}
