package models

import "time"

type Driver struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	DateJoined    time.Time `json:"date_joined"`
	Cars          []*Car    `json:"cars,omitempty"`
}

// DriverInput carries a new driver's fields. Password is plain text and is
// hashed by the service before it reaches storage.
type DriverInput struct {
	Username      string
	Password      string
	FirstName     string
	LastName      string
	Email         string
	LicenseNumber string
}

const DriverVerboseName = "driver"

func (d *Driver) FullName() string {
	switch {
	case d.FirstName != "" && d.LastName != "":
		return d.FirstName + " " + d.LastName
	case d.FirstName != "":
		return d.FirstName
	default:
		return d.LastName
	}
}
