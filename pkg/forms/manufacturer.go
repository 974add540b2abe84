package forms

import (
	"strings"

	"taxifleet/pkg/models"
)

type ManufacturerForm struct {
	Name    string `form:"name" validate:"required,max=255"`
	Country string `form:"country" validate:"required,max=255"`
}

func ManufacturerFormFrom(m *models.Manufacturer) ManufacturerForm {
	return ManufacturerForm{Name: m.Name, Country: m.Country}
}

func (f *ManufacturerForm) Validate() (models.Manufacturer, Errors) {
	f.Name = strings.TrimSpace(f.Name)
	f.Country = strings.TrimSpace(f.Country)

	errs := Errors{}
	checkTags(f, errs)
	if errs.Any() {
		return models.Manufacturer{}, errs
	}
	return models.Manufacturer{Name: f.Name, Country: f.Country}, nil
}

func (f *ManufacturerForm) Fields(errs Errors) []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: "text", Value: f.Name, Required: true, Errors: errs.Get("name")},
		{Name: "country", Label: "Country", Type: "text", Value: f.Country, Required: true, Errors: errs.Get("country")},
	}
}
