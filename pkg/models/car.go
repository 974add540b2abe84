package models

type Car struct {
	ID             int64         `json:"id"`
	Model          string        `json:"model"`
	ManufacturerID int64         `json:"manufacturer_id"`
	Manufacturer   *Manufacturer `json:"manufacturer,omitempty"`
	Drivers        []*Driver     `json:"drivers,omitempty"`
}

// CarInput is the validated shape persisted on car create and update.
// DriverIDs replaces the whole assignment set.
type CarInput struct {
	Model          string
	ManufacturerID int64
	DriverIDs      []int64
}

const CarVerboseName = "car"

// HasDriver reports whether the driver is in the loaded driver set.
func (c *Car) HasDriver(driverID int64) bool {
	for _, d := range c.Drivers {
		if d.ID == driverID {
			return true
		}
	}
	return false
}
