package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Car struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Brand          string             `bson:"brand" json:"brand" validate:"required,max=50"`
	Model          string             `bson:"model" json:"model" validate:"required,max=50"`
	Year           int                `bson:"manufacture_year" json:"year"`
	Color          string             `bson:"color,omitempty" json:"color,omitempty"`
	PricePerDay    float64            `bson:"price_per_day" json:"pricePerDay" validate:"required,gt=0"`
	Available      bool               `bson:"available" json:"available"`
	VIN            string             `bson:"vin" json:"vin" validate:"required,max=17"`
	FuelType       string             `bson:"fuel_type,omitempty" json:"fuelType,omitempty"`
	Transmission   string             `bson:"transmission_type,omitempty" json:"transmission,omitempty"`
	BodyType       string             `bson:"body_type,omitempty" json:"bodyType,omitempty"`
	HorsePower     int                `bson:"horse_power,omitempty" json:"horsePower,omitempty"`
	Mileage        int                `bson:"mileage,omitempty" json:"mileage,omitempty"`
	EngineCapacity float64            `bson:"engine_capacity,omitempty" json:"engineCapacity,omitempty"`
	ImageURL       string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	ManagerID      primitive.ObjectID `bson:"manager_id,omitempty" json:"managerId,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CarFilter holds the optional search criteria for the catalog. Nil or
// empty fields are skipped; the remaining criteria combine with AND.
type CarFilter struct {
	Brand        string   `form:"brand" json:"brand,omitempty"`
	MinPrice     *float64 `form:"minPrice" json:"minPrice,omitempty"`
	MaxPrice     *float64 `form:"maxPrice" json:"maxPrice,omitempty"`
	BodyType     string   `form:"bodyType" json:"bodyType,omitempty"`
	FuelType     string   `form:"fuelType" json:"fuelType,omitempty"`
	Transmission string   `form:"transmission" json:"transmission,omitempty"`
	MinYear      *int     `form:"minYear" json:"minYear,omitempty"`
	MaxYear      *int     `form:"maxYear" json:"maxYear,omitempty"`
	Available    *bool    `form:"available" json:"available,omitempty"`
}

// FilterOptions lists the distinct attribute values currently present in
// inventory, for populating selection controls.
type FilterOptions struct {
	Brands        []string `json:"brands"`
	BodyTypes     []string `json:"bodyTypes"`
	FuelTypes     []string `json:"fuelTypes"`
	Transmissions []string `json:"transmissions"`
}
