package model

// StatusCode is one entry of the closed appointment-status enumeration.
// Keys are fixed; an unrecognized raw label never gets a key invented for it.
type StatusCode struct {
	Key        int64
	Label      string // raw value, e.g. "Completed"
	Successful bool
}

// AllStatuses lists the supported appointment statuses in canonical key order.
var AllStatuses = []StatusCode{
	{Key: 1, Label: "Completed", Successful: true},
	{Key: 2, Label: "Cancelled", Successful: false},
	{Key: 3, Label: "No-show", Successful: false},
	{Key: 4, Label: "Rescheduled", Successful: false},
}

// StatusByLabel returns the StatusCode for the given raw label, or ok=false.
func StatusByLabel(label string) (StatusCode, bool) {
	for _, s := range AllStatuses {
		if s.Label == label {
			return s, true
		}
	}
	return StatusCode{}, false
}

// DeviceClass is one entry of the closed device-type enumeration.
type DeviceClass struct {
	Key    int64
	Label  string
	Mobile bool
}

// AllDeviceTypes lists the supported device types in canonical key order.
var AllDeviceTypes = []DeviceClass{
	{Key: 1, Label: "Mobile Phone", Mobile: true},
	{Key: 2, Label: "Tablet", Mobile: true},
	{Key: 3, Label: "Laptop", Mobile: false},
	{Key: 4, Label: "Desktop", Mobile: false},
}

// DeviceByLabel returns the DeviceClass for the given raw label, or ok=false.
func DeviceByLabel(label string) (DeviceClass, bool) {
	for _, d := range AllDeviceTypes {
		if d.Label == label {
			return d, true
		}
	}
	return DeviceClass{}, false
}
