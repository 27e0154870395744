package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusRejected  RentalStatus = "REJECTED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// BlockingStatuses are the statuses that occupy a car: only confirmed and
// active rentals count toward the overlap check. Pending requests do not
// block other requests; the first one approved wins.
var BlockingStatuses = []RentalStatus{RentalStatusConfirmed, RentalStatusActive}

// Terminal reports whether no further transition is possible.
func (s RentalStatus) Terminal() bool {
	switch s {
	case RentalStatusCompleted, RentalStatusCancelled, RentalStatusRejected:
		return true
	}
	return false
}

// Rental is a rental request and its full lifecycle. ManagerID is copied
// from the car at creation so manager-scoped queries stay on one
// collection; car ownership never changes after creation.
type Rental struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	CarID           primitive.ObjectID `bson:"car_id" json:"carId"`
	ManagerID       primitive.ObjectID `bson:"manager_id,omitempty" json:"managerId,omitempty"`
	StartDate       time.Time          `bson:"start_date" json:"startDate"`
	EndDate         time.Time          `bson:"end_date" json:"endDate"`
	TotalPrice      float64            `bson:"total_price" json:"totalPrice"`
	Status          RentalStatus       `bson:"status" json:"status"`
	ActualStartDate *time.Time         `bson:"actual_start_date,omitempty" json:"actualStartDate,omitempty"`
	ActualEndDate   *time.Time         `bson:"actual_end_date,omitempty" json:"actualEndDate,omitempty"`
	ActualPrice     *float64           `bson:"actual_price,omitempty" json:"actualPrice,omitempty"`
	RejectionReason string             `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time         `bson:"approved_at,omitempty" json:"approvedAt,omitempty"`
	ManagerNotes    string             `bson:"manager_notes,omitempty" json:"managerNotes,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ManagerRentalStats aggregates a manager's rentals by status bucket.
// TotalRevenue sums actual prices over completed rentals only.
type ManagerRentalStats struct {
	PendingCount   int64   `json:"pendingCount"`
	ActiveCount    int64   `json:"activeCount"`
	CompletedCount int64   `json:"completedCount"`
	TotalCount     int64   `json:"totalCount"`
	TotalRevenue   float64 `json:"totalRevenue"`
}
