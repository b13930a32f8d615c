package models

// Vehicle is a row of the Identity service vehicle list.
type Vehicle struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId,omitempty"` // owning carrier
	PlateNumber     string   `json:"plateNumber"`
	Make            string   `json:"make,omitempty"`
	Model           string   `json:"model,omitempty"`
	ModelYear       int      `json:"modelYear,omitempty"`
	VehicleType     string   `json:"vehicleType,omitempty"`
	Status          string   `json:"status,omitempty"`
	PayloadCapacity float64  `json:"payloadCapacity,omitempty"` // kg
	CargoVolume     float64  `json:"cargoVolume,omitempty"`     // m³
	IsRefrigerated  bool     `json:"isRefrigerated"`
	HazmatAllowed   bool     `json:"hazmatAllowed"`
	HasLiftgate     bool     `json:"hasLiftgate"`
	LastKnownLat    *float64 `json:"lastKnownLat,omitempty"`
	LastKnownLng    *float64 `json:"lastKnownLng,omitempty"`
}
