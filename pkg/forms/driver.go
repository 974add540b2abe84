package forms

import (
	"strings"

	"taxifleet/pkg/models"
)

// DriverCreationForm is the only place the username rules apply; later
// edits touch the license number alone.
type DriverCreationForm struct {
	Username      string `form:"username"`
	Password      string `form:"password" validate:"required,max=128"`
	FirstName     string `form:"first_name" validate:"max=150"`
	LastName      string `form:"last_name" validate:"max=150"`
	Email         string `form:"email" validate:"omitempty,email,max=254"`
	LicenseNumber string `form:"license_number" validate:"required"`
}

func (f *DriverCreationForm) Validate() (models.DriverInput, Errors) {
	f.Username = strings.TrimSpace(f.Username)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.LicenseNumber = strings.TrimSpace(f.LicenseNumber)

	errs := Errors{}
	checkTags(f, errs)
	errs.Add("username", ValidateUsername(f.Username)...)
	if f.LicenseNumber != "" {
		errs.Add("license_number", ValidateLicenseNumber(f.LicenseNumber)...)
	}

	if errs.Any() {
		return models.DriverInput{}, errs
	}
	return models.DriverInput{
		Username:      f.Username,
		Password:      f.Password,
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Email:         f.Email,
		LicenseNumber: f.LicenseNumber,
	}, nil
}

// Fields never echoes the password back.
func (f *DriverCreationForm) Fields(errs Errors) []Field {
	return []Field{
		{Name: "username", Label: "Username", Type: "text", Value: f.Username, Required: true, Errors: errs.Get("username")},
		{Name: "password", Label: "Password", Type: "password", Required: true, Errors: errs.Get("password")},
		{Name: "first_name", Label: "First name", Type: "text", Value: f.FirstName, Errors: errs.Get("first_name")},
		{Name: "last_name", Label: "Last name", Type: "text", Value: f.LastName, Errors: errs.Get("last_name")},
		{Name: "email", Label: "Email address", Type: "email", Value: f.Email, Errors: errs.Get("email")},
		{Name: "license_number", Label: "License number", Type: "text", Value: f.LicenseNumber, Required: true, Errors: errs.Get("license_number")},
	}
}

type LicenseUpdateForm struct {
	LicenseNumber string `form:"license_number" validate:"required"`
}

func LicenseUpdateFormFrom(d *models.Driver) LicenseUpdateForm {
	return LicenseUpdateForm{LicenseNumber: d.LicenseNumber}
}

func (f *LicenseUpdateForm) Validate() (string, Errors) {
	f.LicenseNumber = strings.TrimSpace(f.LicenseNumber)

	errs := Errors{}
	checkTags(f, errs)
	if f.LicenseNumber != "" {
		errs.Add("license_number", ValidateLicenseNumber(f.LicenseNumber)...)
	}
	if errs.Any() {
		return "", errs
	}
	return f.LicenseNumber, nil
}

func (f *LicenseUpdateForm) Fields(errs Errors) []Field {
	return []Field{
		{Name: "license_number", Label: "License number", Type: "text", Value: f.LicenseNumber, Required: true, Errors: errs.Get("license_number")},
	}
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Validate() Errors {
	f.Username = strings.TrimSpace(f.Username)

	errs := Errors{}
	checkTags(f, errs)
	if errs.Any() {
		return errs
	}
	return nil
}

func (f *LoginForm) Fields(errs Errors) []Field {
	return []Field{
		{Name: "username", Label: "Username", Type: "text", Value: f.Username, Required: true, Errors: errs.Get("username")},
		{Name: "password", Label: "Password", Type: "password", Required: true, Errors: errs.Get("password")},
	}
}
