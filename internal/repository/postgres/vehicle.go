package postgres

import (
	"context"
	"database/sql"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

type vehicleRepository struct {
	db dbtx
}

func NewVehicleRepository(db dbtx) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, apartment_id, telematics_ref, plate, model, msrp_factor FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.ApartmentID, &v.TelematicsRef, &v.Plate, &v.Model, &v.MSRPFactor)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) CreateSnapshot(ctx context.Context, snap *domain.VehicleSnapshot) error {
	query := `INSERT INTO vehicle_snapshots (vehicle_id, odometer, fuel_level, image_refs, capture_time)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, snap.VehicleID, snap.Odometer, snap.FuelLevel, snap.ImageRefs, snap.CaptureTime).Scan(&snap.ID)
}

func (r *vehicleRepository) GetSnapshot(ctx context.Context, id int64) (*domain.VehicleSnapshot, error) {
	snap := &domain.VehicleSnapshot{}
	query := `SELECT id, vehicle_id, odometer, fuel_level, image_refs, capture_time FROM vehicle_snapshots WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&snap.ID, &snap.VehicleID, &snap.Odometer, &snap.FuelLevel, &snap.ImageRefs, &snap.CaptureTime)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}
