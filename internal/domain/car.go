package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Fuel type values accepted for Car.FuelType.
const (
	FuelPetrol   = "Petrol"
	FuelDiesel   = "Diesel"
	FuelElectric = "Electric"
	FuelHybrid   = "Hybrid"
)

// Transmission values.
const (
	TransmissionManual    = "Manual"
	TransmissionAutomatic = "Automatic"
)

// Body type values.
const (
	BodySedan       = "Sedan"
	BodySUV         = "SUV"
	BodyHatchback   = "Hatchback"
	BodyCoupe       = "Coupe"
	BodyConvertible = "Convertible"
	BodyTruck       = "Truck"
)

// Listing status values. Public browsing only shows active cars.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusSold     = "sold"
)

// Car is one marketplace listing. Images and Videos are ordered JSON
// arrays of string references; a video reference may be either a full
// URL or a bare Mux playback ID (normalized at the client boundary).
type Car struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Make          string         `gorm:"column:make;not null;index" json:"make"`
	Model         string         `gorm:"column:model;not null;index" json:"model"`
	Year          int            `gorm:"column:year;not null" json:"year"`
	Price         float64        `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Mileage       float64        `gorm:"column:mileage;type:decimal(12,1);not null" json:"mileage"`
	Color         string         `gorm:"column:color" json:"color"`
	FuelType      string         `gorm:"column:fuel_type;type:varchar(20);not null" json:"fuel_type"`
	Transmission  string         `gorm:"column:transmission;type:varchar(20);not null" json:"transmission"`
	BodyType      string         `gorm:"column:body_type;type:varchar(20);not null" json:"body_type"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Location      string         `gorm:"column:location;not null" json:"location"`
	Status        string         `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	Images        datatypes.JSON `gorm:"column:images;type:json" json:"images"`
	Videos        datatypes.JSON `gorm:"column:videos;type:json" json:"videos"`
	SellerID      *uuid.UUID     `gorm:"column:seller_id;type:uuid" json:"seller_id"`
	LikesCount    int            `gorm:"column:likes_count;default:0" json:"likes_count"`
	CommentsCount int            `gorm:"column:comments_count;default:0" json:"comments_count"`
	ViewsCount    int            `gorm:"column:views_count;default:0" json:"views_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Car) TableName() string {
	return "cars"
}

// BeforeCreate sets the UUID if not set (for DBs without gen_random_uuid).
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
