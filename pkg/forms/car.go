package forms

import (
	"slices"
	"strings"

	"github.com/spf13/cast"

	"taxifleet/pkg/models"
)

const msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."

// CarForm backs both car creation and car update. Ids stay strings until
// Validate so a bad value becomes a field error instead of a bind failure.
type CarForm struct {
	Model        string   `form:"model" validate:"required,max=255"`
	Manufacturer string   `form:"manufacturer" validate:"required"`
	Drivers      []string `form:"drivers"`

	manufacturers []*models.Manufacturer
	drivers       []*models.Driver
}

// WithChoices sets the manufacturers and drivers the form may reference.
func (f *CarForm) WithChoices(manufacturers []*models.Manufacturer, drivers []*models.Driver) *CarForm {
	f.manufacturers = manufacturers
	f.drivers = drivers
	return f
}

func CarFormFrom(c *models.Car) CarForm {
	f := CarForm{
		Model:        c.Model,
		Manufacturer: cast.ToString(c.ManufacturerID),
	}
	for _, d := range c.Drivers {
		f.Drivers = append(f.Drivers, cast.ToString(d.ID))
	}
	return f
}

func (f *CarForm) Validate() (models.CarInput, Errors) {
	f.Model = strings.TrimSpace(f.Model)
	f.Manufacturer = strings.TrimSpace(f.Manufacturer)

	errs := Errors{}
	checkTags(f, errs)

	var in models.CarInput
	in.Model = f.Model

	if f.Manufacturer != "" {
		id, ok := models.ParseID(f.Manufacturer)
		if !ok || !f.hasManufacturer(id) {
			errs.Add("manufacturer", msgInvalidChoice)
		} else {
			in.ManufacturerID = id
		}
	}

	for _, raw := range f.Drivers {
		id, ok := models.ParseID(strings.TrimSpace(raw))
		if !ok || !f.hasDriver(id) {
			errs.Add("drivers", "Select a valid choice. "+raw+" is not one of the available choices.")
			continue
		}
		if !slices.Contains(in.DriverIDs, id) {
			in.DriverIDs = append(in.DriverIDs, id)
		}
	}

	if errs.Any() {
		return models.CarInput{}, errs
	}
	return in, nil
}

func (f *CarForm) Fields(errs Errors) []Field {
	manufacturerChoices := []Choice{{Value: "", Label: "---------", Selected: f.Manufacturer == ""}}
	for _, m := range f.manufacturers {
		v := cast.ToString(m.ID)
		manufacturerChoices = append(manufacturerChoices, Choice{
			Value:    v,
			Label:    m.Name + " " + m.Country,
			Selected: v == f.Manufacturer,
		})
	}

	driverChoices := make([]Choice, 0, len(f.drivers))
	for _, d := range f.drivers {
		v := cast.ToString(d.ID)
		driverChoices = append(driverChoices, Choice{
			Value:    v,
			Label:    driverLabel(d),
			Selected: slices.Contains(f.Drivers, v),
		})
	}

	return []Field{
		{Name: "model", Label: "Model", Type: "text", Value: f.Model, Required: true, Errors: errs.Get("model")},
		{Name: "manufacturer", Label: "Manufacturer", Type: "select", Value: f.Manufacturer, Required: true, Choices: manufacturerChoices, Errors: errs.Get("manufacturer")},
		{Name: "drivers", Label: "Drivers", Type: "checkboxes", Choices: driverChoices, Errors: errs.Get("drivers")},
	}
}

func (f *CarForm) hasManufacturer(id int64) bool {
	return slices.ContainsFunc(f.manufacturers, func(m *models.Manufacturer) bool { return m.ID == id })
}

func (f *CarForm) hasDriver(id int64) bool {
	return slices.ContainsFunc(f.drivers, func(d *models.Driver) bool { return d.ID == id })
}

func driverLabel(d *models.Driver) string {
	if name := d.FullName(); name != "" {
		return d.Username + " (" + name + ")"
	}
	return d.Username
}
