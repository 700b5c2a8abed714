// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Coordinates are nullable: an order placed with an unresolved address has no
// lat/lon and its distance is the fallback value.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID int64     `gorm:"type:bigint;index"`

	PickupAt time.Time

	PickupAddress string
	PickupLat     *float64
	PickupLon     *float64

	DropoffAddress string
	DropoffLat     *float64
	DropoffLon     *float64

	WeightKg   float64
	DistanceKm float64
	PriceRub   int64

	Status         string `gorm:"index"`
	Comment        string
	ManagerComment string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	pickupLat, pickupLon := coords(aggregate.Pickup())
	dropoffLat, dropoffLon := coords(aggregate.Dropoff())

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		UserID:         aggregate.UserID(),
		PickupAt:       aggregate.PickupAt(),
		PickupAddress:  aggregate.Pickup().Address,
		PickupLat:      pickupLat,
		PickupLon:      pickupLon,
		DropoffAddress: aggregate.Dropoff().Address,
		DropoffLat:     dropoffLat,
		DropoffLon:     dropoffLon,
		WeightKg:       aggregate.WeightKg(),
		DistanceKm:     aggregate.DistanceKm(),
		PriceRub:       aggregate.PriceRub(),
		Status:         aggregate.Status().Name(),
		Comment:        aggregate.Comment(),
		ManagerComment: aggregate.ManagerComment(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and comments using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := waypoint(dto.PickupAddress, dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}

	dropoff, err := waypoint(dto.DropoffAddress, dto.DropoffLat, dto.DropoffLon)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		dto.PickupAt,
		pickup,
		dropoff,
		dto.WeightKg,
		dto.DistanceKm,
		dto.PriceRub,
		status,
		dto.Comment,
		dto.ManagerComment,
	)
}

func coords(w order.Waypoint) (*float64, *float64) {
	if w.Point == nil {
		return nil, nil
	}
	lat := w.Point.Latitude()
	lon := w.Point.Longitude()
	return &lat, &lon
}

func waypoint(address string, lat, lon *float64) (order.Waypoint, error) {
	w := order.Waypoint{Address: address}
	if lat == nil || lon == nil {
		return w, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return order.Waypoint{}, err
	}
	w.Point = &point
	return w, nil
}
