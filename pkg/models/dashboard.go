package models

type Dashboard struct {
	NumDrivers       int `json:"num_drivers"`
	NumCars          int `json:"num_cars"`
	NumManufacturers int `json:"num_manufacturers"`
	NumVisits        int `json:"num_visits"`
}
