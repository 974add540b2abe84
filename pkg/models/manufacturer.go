package models

type Manufacturer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ManufacturerVerboseName is shown on the delete confirmation page.
const ManufacturerVerboseName = "manufacturer"
