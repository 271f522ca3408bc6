package order

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// VehicleType is the kind of vehicle an item requires.
type VehicleType int

const (
	UnknownVehicle VehicleType = iota
	Motorbike
	Pickup
	Van
	Truck
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		UnknownVehicle: "Unknown",
		Motorbike:      "Motorbike",
		Pickup:         "Pickup",
		Van:            "Van",
		Truck:          "Truck",
	}
}

func VehicleTypeFromString(s string) (VehicleType, error) {
	for vt, str := range getVehicleTypeStrings() {
		if vt != UnknownVehicle && str == s {
			return vt, nil
		}
	}
	return UnknownVehicle, errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a valid vehicle type", s))
}

func (v VehicleType) Validate() error {
	if _, ok := getVehicleTypeStrings()[v]; !ok || v == UnknownVehicle {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "Unknown"
}
