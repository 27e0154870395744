package repository

import (
	"context"
	"regexp"
	"time"

	"carrental-backend/internal/apperr"
	"carrental-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CarRepository struct {
	collection *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{
		collection: db.Collection("cars"),
	}
}

func (r *CarRepository) Create(car *models.Car) (*models.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return nil, err
	}

	car.ID = result.InsertedID.(primitive.ObjectID)
	return car, nil
}

func (r *CarRepository) FindByID(id string) (*models.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidInput("invalid car ID")
	}

	var car models.Car
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("car not found with ID: %s", id)
		}
		return nil, err
	}

	return &car, nil
}

func (r *CarRepository) FindByVIN(vin string) (*models.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"vin": vin}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("car not found with VIN: %s", vin)
		}
		return nil, err
	}

	return &car, nil
}

func (r *CarRepository) FindAll() ([]*models.Car, error) {
	return r.findMany(bson.M{})
}

func (r *CarRepository) FindAvailable() ([]*models.Car, error) {
	return r.findMany(bson.M{"available": true})
}

func (r *CarRepository) FindByManager(managerID string) ([]*models.Car, error) {
	objectID, err := primitive.ObjectIDFromHex(managerID)
	if err != nil {
		return nil, apperr.InvalidInput("invalid manager ID")
	}
	return r.findMany(bson.M{"manager_id": objectID})
}

// FindWithFilters combines the optional criteria with AND semantics.
// Empty strings and nil pointers are treated as "no filter".
func (r *CarRepository) FindWithFilters(f *models.CarFilter) ([]*models.Car, error) {
	filter := bson.M{}

	if f.Brand != "" {
		filter["brand"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(f.Brand), Options: "i"}}
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price_per_day"] = price
	}
	if f.BodyType != "" {
		filter["body_type"] = f.BodyType
	}
	if f.FuelType != "" {
		filter["fuel_type"] = f.FuelType
	}
	if f.Transmission != "" {
		filter["transmission_type"] = f.Transmission
	}
	year := bson.M{}
	if f.MinYear != nil {
		year["$gte"] = *f.MinYear
	}
	if f.MaxYear != nil {
		year["$lte"] = *f.MaxYear
	}
	if len(year) > 0 {
		filter["manufacture_year"] = year
	}
	if f.Available != nil {
		filter["available"] = *f.Available
	}

	return r.findMany(filter)
}

// FilterOptions collects the distinct attribute values present in inventory.
func (r *CarRepository) FilterOptions() (*models.FilterOptions, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := &models.FilterOptions{}
	fields := []struct {
		key  string
		dest *[]string
	}{
		{"brand", &opts.Brands},
		{"body_type", &opts.BodyTypes},
		{"fuel_type", &opts.FuelTypes},
		{"transmission_type", &opts.Transmissions},
	}

	for _, field := range fields {
		values, err := r.collection.Distinct(ctx, field.key, bson.M{})
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			if s, ok := v.(string); ok && s != "" {
				*field.dest = append(*field.dest, s)
			}
		}
	}

	return opts, nil
}

func (r *CarRepository) Update(id string, car *models.Car) (*models.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidInput("invalid car ID")
	}

	car.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": car},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Car
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("car not found with ID: %s", id)
		}
		return nil, err
	}

	return &updated, nil
}

func (r *CarRepository) findMany(filter bson.M) ([]*models.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, err
		}
		cars = append(cars, &car)
	}

	return cars, nil
}
