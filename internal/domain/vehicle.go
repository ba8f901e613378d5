package domain

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Vehicle struct {
	ID            int64           `json:"id"`
	ApartmentID   int64           `json:"apartment_id"`
	TelematicsRef string          `json:"telematics_ref"`
	Plate         string          `json:"plate"`
	Model         string          `json:"model"`
	MSRPFactor    decimal.Decimal `json:"msrp_factor"`
}

// VehicleSnapshot is an odometer/fuel/visual-condition record captured at
// pickup or drop-off. Immutable once created.
type VehicleSnapshot struct {
	ID          int64           `json:"id"`
	VehicleID   int64           `json:"vehicle_id"`
	Odometer    int64           `json:"odometer"`
	FuelLevel   decimal.Decimal `json:"fuel_level"`
	ImageRefs   pq.StringArray  `json:"image_refs"`
	CaptureTime time.Time       `json:"capture_time"`
}
