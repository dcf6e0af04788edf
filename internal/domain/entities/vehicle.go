package entities

import "fmt"

// VehicleConfig is the factory build sheet and feature set. It changes
// rarely so it is only refreshed when the vehicle list is.
type VehicleConfig struct {
	Nickname             string
	Model                Model
	Variant              ModelVariant
	PaintColor           PaintColor
	Look                 Look
	Wheels               Wheels
	FrontSeatsHeating    bool
	SecondRowHeatedSeats bool
	HeatedSteeringWheel  bool
	RearSeatConfig       RearSeatConfig
}

// Vehicle is one car on the account.
type Vehicle struct {
	VIN    string
	Config VehicleConfig
	State  VehicleState
}

// DisplayName is the owner's nickname, falling back to the model.
func (v *Vehicle) DisplayName() string {
	if v.Config.Nickname != "" {
		return v.Config.Nickname
	}
	return v.ModelLabel()
}

// ModelLabel renders the build as shown on the decklid, e.g.
// "Air Grand Touring".
func (v *Vehicle) ModelLabel() string {
	return fmt.Sprintf("%s %s", v.Config.Model.Label(), v.Config.Variant.Label())
}

// HasRearCenterSeat reports whether the rear bench has a center position.
func (v *Vehicle) HasRearCenterSeat() bool {
	return v.Config.RearSeatConfig != RearSeatConfigSix
}
