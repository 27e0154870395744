package repository

import (
	"context"
	"time"

	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RentalRepository struct {
	collection *mongo.Collection
}

func NewRentalRepository(db *mongo.Database) *RentalRepository {
	return &RentalRepository{
		collection: db.Collection("rentals"),
	}
}

func (r *RentalRepository) Create(rental *models.Rental) (*models.Rental, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, rental)
	if err != nil {
		return nil, err
	}

	rental.ID = result.InsertedID.(primitive.ObjectID)
	return rental, nil
}

func (r *RentalRepository) FindByID(id string) (*models.Rental, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidInput("invalid rental ID")
	}

	var rental models.Rental
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rental)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("rental not found with ID: %s", id)
		}
		return nil, err
	}

	return &rental, nil
}

func (r *RentalRepository) FindByUser(userID string) ([]*models.Rental, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.InvalidInput("invalid user ID")
	}
	return r.findMany(bson.M{"user_id": objectID})
}

func (r *RentalRepository) FindByCar(carID string) ([]*models.Rental, error) {
	objectID, err := primitive.ObjectIDFromHex(carID)
	if err != nil {
		return nil, apperr.InvalidInput("invalid car ID")
	}
	return r.findMany(bson.M{"car_id": objectID})
}

func (r *RentalRepository) FindByStatus(status models.RentalStatus) ([]*models.Rental, error) {
	return r.findMany(bson.M{"status": status})
}

func (r *RentalRepository) FindByManager(managerID string) ([]*models.Rental, error) {
	objectID, err := primitive.ObjectIDFromHex(managerID)
	if err != nil {
		return nil, apperr.InvalidInput("invalid manager ID")
	}
	return r.findMany(bson.M{"manager_id": objectID})
}

func (r *RentalRepository) FindByManagerAndStatus(managerID string, statuses ...models.RentalStatus) ([]*models.Rental, error) {
	objectID, err := primitive.ObjectIDFromHex(managerID)
	if err != nil {
		return nil, apperr.InvalidInput("invalid manager ID")
	}
	return r.findMany(bson.M{
		"manager_id": objectID,
		"status":     bson.M{"$in": statuses},
	})
}

// ExistsOverlapping reports whether the car has a rental in one of the
// given statuses whose window [start_date, end_date) intersects
// [start, end). excludeID, when non-empty, leaves a rental out of the
// check so it does not conflict with itself on approval.
func (r *RentalRepository) ExistsOverlapping(carID string, start, end time.Time, excludeID string, statuses []models.RentalStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	carOID, err := primitive.ObjectIDFromHex(carID)
	if err != nil {
		return false, apperr.InvalidInput("invalid car ID")
	}

	filter := bson.M{
		"car_id":     carOID,
		"status":     bson.M{"$in": statuses},
		"start_date": bson.M{"$lt": end},
		"end_date":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		excludeOID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return false, apperr.InvalidInput("invalid rental ID")
		}
		filter["_id"] = bson.M{"$ne": excludeOID}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// TotalRevenueByManager sums actual prices over the manager's completed
// rentals. Rentals without an actual price contribute nothing.
func (r *RentalRepository) TotalRevenueByManager(managerID string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(managerID)
	if err != nil {
		return 0, apperr.InvalidInput("invalid manager ID")
	}

	pipeline := []bson.M{
		{
			"$match": bson.M{
				"manager_id":   objectID,
				"status":       models.RentalStatusCompleted,
				"actual_price": bson.M{"$ne": nil},
			},
		},
		{
			"$group": bson.M{
				"_id":           nil,
				"total_revenue": bson.M{"$sum": "$actual_price"},
			},
		},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result struct {
		TotalRevenue float64 `bson:"total_revenue"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
	}

	return result.TotalRevenue, nil
}

func (r *RentalRepository) Update(id string, rental *models.Rental) (*models.Rental, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidInput("invalid rental ID")
	}

	rental.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": rental},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Rental
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("rental not found with ID: %s", id)
		}
		return nil, err
	}

	return &updated, nil
}

func (r *RentalRepository) findMany(filter bson.M) ([]*models.Rental, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rentals []*models.Rental
	for cursor.Next(ctx) {
		var rental models.Rental
		if err := cursor.Decode(&rental); err != nil {
			return nil, err
		}
		rentals = append(rentals, &rental)
	}

	return rentals, nil
}
