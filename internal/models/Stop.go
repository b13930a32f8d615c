package models

// StopType distinguishes pickup from delivery points. The numeric values are
// part of the Load service contract.
type StopType int

const (
	StopPickup   StopType = 0
	StopDelivery StopType = 1
)

// DefaultCountry is applied to stops submitted without a country.
const DefaultCountry = "Türkiye"

func (t StopType) String() string {
	switch t {
	case StopPickup:
		return "Pickup"
	case StopDelivery:
		return "Delivery"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the known stop types.
func (t StopType) Valid() bool {
	return t == StopPickup || t == StopDelivery
}

// Stop is one pickup or delivery point while a load is being edited.
// Its order is its position in the wizard's stop list.
type Stop struct {
	StopType          *StopType `json:"stopType" validate:"required"`
	Address           string    `json:"address" validate:"required,max=500"`
	City              string    `json:"city" validate:"required,max=100"`
	District          string    `json:"district" validate:"required,max=100"`
	Country           string    `json:"country,omitempty" validate:"max=100"`
	ContactPersonName string    `json:"contactPersonName,omitempty" validate:"max=100"`
	ContactPhone      string    `json:"contactPhone,omitempty" validate:"max=20,phonechars"`
}

// Type returns the stop type, or -1 when unset.
func (s Stop) Type() StopType {
	if s.StopType == nil {
		return -1
	}
	return *s.StopType
}

// NewStop builds a stop of the given type.
func NewStop(t StopType, address, city, district string) Stop {
	return Stop{StopType: &t, Address: address, City: city, District: district}
}
