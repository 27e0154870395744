package services

import (
	"strings"
	"time"

	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"
)

// RentalService owns the rental request lifecycle:
//
//	PENDING -> CONFIRMED -> ACTIVE -> COMPLETED
//	PENDING -> REJECTED
//	any non-terminal -> CANCELLED
//
// Availability is enforced against confirmed and active rentals only;
// competing pending requests are resolved at approval time.
type RentalService struct {
	rentalRepo RentalStore
	carRepo    CarStore
	userRepo   UserStore
	now        func() time.Time
}

func NewRentalService(rentalRepo RentalStore, carRepo CarStore, userRepo UserStore) *RentalService {
	return &RentalService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

type CreateRentalRequest struct {
	CarID     string    `json:"carId" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type RejectRentalRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// CreateRental validates the request and persists a pending rental priced
// from the planned window.
func (s *RentalService) CreateRental(userID string, req *CreateRentalRequest) (*models.Rental, error) {
	now := s.now()

	if !req.EndDate.After(req.StartDate) {
		return nil, apperr.InvalidInput("end date must be after start date")
	}
	if req.StartDate.Before(now) {
		return nil, apperr.InvalidInput("start date cannot be in the past")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case models.RoleClient:
	case models.RoleManager, models.RoleAdmin:
		return nil, apperr.Unauthorized("only clients can rent cars")
	default:
		return nil, apperr.Unauthorized("only clients can rent cars")
	}

	car, err := s.carRepo.FindByID(req.CarID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCarAvailable(car, req.StartDate, req.EndDate, ""); err != nil {
		return nil, err
	}

	rental := &models.Rental{
		UserID:     user.ID,
		CarID:      car.ID,
		ManagerID:  car.ManagerID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: calculatePrice(car.PricePerDay, req.StartDate, req.EndDate),
		Status:     models.RentalStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.rentalRepo.Create(rental)
}

// ApproveRental transitions PENDING -> CONFIRMED. The actor must be the
// manager owning the car; availability is re-checked because competing
// requests may have been confirmed since creation.
func (s *RentalService) ApproveRental(rentalID, actorID string) (*models.Rental, error) {
	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		return nil, err
	}

	if err := s.requireCarManager(rental, actorID); err != nil {
		return nil, err
	}

	if rental.Status != models.RentalStatusPending {
		return nil, apperr.InvalidState("only pending rentals can be approved")
	}

	car, err := s.carRepo.FindByID(rental.CarID.Hex())
	if err != nil {
		return nil, err
	}

	if err := s.checkCarAvailable(car, rental.StartDate, rental.EndDate, rentalID); err != nil {
		return nil, err
	}

	now := s.now()
	rental.Status = models.RentalStatusConfirmed
	rental.ApprovedAt = &now

	return s.rentalRepo.Update(rentalID, rental)
}

// RejectRental transitions PENDING -> REJECTED, recording an optional
// reason.
func (s *RentalService) RejectRental(rentalID, actorID, reason string) (*models.Rental, error) {
	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		return nil, err
	}

	if err := s.requireCarManager(rental, actorID); err != nil {
		return nil, err
	}

	if rental.Status != models.RentalStatusPending {
		return nil, apperr.InvalidState("only pending rentals can be rejected")
	}

	rental.Status = models.RentalStatusRejected
	if strings.TrimSpace(reason) != "" {
		rental.RejectionReason = strings.TrimSpace(reason)
	}

	return s.rentalRepo.Update(rentalID, rental)
}

// StartRental transitions CONFIRMED -> ACTIVE once the planned start has
// elapsed.
func (s *RentalService) StartRental(rentalID string) (*models.Rental, error) {
	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status != models.RentalStatusConfirmed {
		return nil, apperr.InvalidState("only confirmed rentals can be started")
	}

	now := s.now()
	if rental.StartDate.After(now) {
		return nil, apperr.InvalidInput("rental start date has not arrived yet")
	}

	rental.Status = models.RentalStatusActive
	rental.ActualStartDate = &now

	return s.rentalRepo.Update(rentalID, rental)
}

// CompleteRental transitions ACTIVE or CONFIRMED -> COMPLETED and
// recomputes the actual price from the elapsed whole days, one day
// minimum.
func (s *RentalService) CompleteRental(rentalID, actorID string) (*models.Rental, error) {
	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		return nil, err
	}

	if err := s.requireCarManager(rental, actorID); err != nil {
		return nil, err
	}

	if rental.Status != models.RentalStatusActive && rental.Status != models.RentalStatusConfirmed {
		return nil, apperr.InvalidState("only active or confirmed rentals can be completed")
	}

	car, err := s.carRepo.FindByID(rental.CarID.Hex())
	if err != nil {
		return nil, err
	}

	now := s.now()
	actualPrice := calculatePrice(car.PricePerDay, rental.StartDate, now)

	rental.Status = models.RentalStatusCompleted
	rental.ActualEndDate = &now
	rental.ActualPrice = &actualPrice

	return s.rentalRepo.Update(rentalID, rental)
}

// CancelRental moves any non-terminal rental to CANCELLED. The requester
// may cancel their own rental; managers and admins may cancel any.
func (s *RentalService) CancelRental(rentalID, actorID string) (*models.Rental, error) {
	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}

	isOwner := rental.UserID == actor.ID
	var privileged bool
	switch actor.Role {
	case models.RoleManager, models.RoleAdmin:
		privileged = true
	case models.RoleClient:
		privileged = false
	}

	if !isOwner && !privileged {
		return nil, apperr.Unauthorized("insufficient rights to cancel this rental")
	}

	if rental.Status.Terminal() {
		return nil, apperr.InvalidState("cannot cancel a rental in status %s", rental.Status)
	}

	rental.Status = models.RentalStatusCancelled
	return s.rentalRepo.Update(rentalID, rental)
}

func (s *RentalService) GetRentalByID(id string) (*models.Rental, error) {
	return s.rentalRepo.FindByID(id)
}

func (s *RentalService) GetUserRentals(userID string) ([]*models.Rental, error) {
	return s.rentalRepo.FindByUser(userID)
}

func (s *RentalService) GetCarRentals(carID string) ([]*models.Rental, error) {
	return s.rentalRepo.FindByCar(carID)
}

func (s *RentalService) GetRentalsByStatus(status models.RentalStatus) ([]*models.Rental, error) {
	return s.rentalRepo.FindByStatus(status)
}

func (s *RentalService) GetManagerRentals(managerID string) ([]*models.Rental, error) {
	return s.rentalRepo.FindByManager(managerID)
}

func (s *RentalService) GetManagerRentalsByStatus(managerID string, statuses ...models.RentalStatus) ([]*models.Rental, error) {
	return s.rentalRepo.FindByManagerAndStatus(managerID, statuses...)
}

// GetManagerRentalStats buckets a manager's rentals by status and sums
// completed revenue through the repository aggregation.
func (s *RentalService) GetManagerRentalStats(managerID string) (*models.ManagerRentalStats, error) {
	rentals, err := s.rentalRepo.FindByManager(managerID)
	if err != nil {
		return nil, err
	}

	stats := &models.ManagerRentalStats{TotalCount: int64(len(rentals))}
	for _, rental := range rentals {
		switch rental.Status {
		case models.RentalStatusPending:
			stats.PendingCount++
		case models.RentalStatusConfirmed, models.RentalStatusActive:
			stats.ActiveCount++
		case models.RentalStatusCompleted:
			stats.CompletedCount++
		}
	}

	revenue, err := s.rentalRepo.TotalRevenueByManager(managerID)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue

	return stats, nil
}

// checkCarAvailable verifies the availability flag and the overlap
// exclusion: no confirmed or active rental for the car may intersect
// [start, end). excludeID keeps a rental from conflicting with itself.
func (s *RentalService) checkCarAvailable(car *models.Car, start, end time.Time, excludeID string) error {
	if !car.Available {
		return apperr.InvalidInput("car is not available for rent")
	}

	overlaps, err := s.rentalRepo.ExistsOverlapping(car.ID.Hex(), start, end, excludeID, models.BlockingStatuses)
	if err != nil {
		return err
	}
	if overlaps {
		return apperr.InvalidInput("car is not available for the selected dates")
	}

	return nil
}

// calculatePrice charges per whole day between the two timestamps, with a
// one day minimum for sub-day windows.
func calculatePrice(pricePerDay float64, start, end time.Time) float64 {
	days := int64(end.Sub(start) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return pricePerDay * float64(days)
}

func (s *RentalService) requireCarManager(rental *models.Rental, actorID string) error {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return err
	}

	if rental.ManagerID.IsZero() || rental.ManagerID != actor.ID {
		return apperr.Unauthorized("you do not manage this rental's car")
	}

	return nil
}
