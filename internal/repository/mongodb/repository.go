package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/repository"
)

// MongoDBRepository implements repository.RecordRepository for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects, pings and ensures the unique date index.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "daily_records",
	}

	_, err = r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ensure date index: %w", err)
	}

	return r, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Create inserts a record. A second record for the same date is rejected.
func (r *MongoDBRepository) Create(ctx context.Context, record models.DailyRecord) error {
	_, err := r.collection().InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateDate
	}
	if err != nil {
		return fmt.Errorf("failed to insert daily record: %w", err)
	}
	return nil
}

// Get loads the record for a date.
func (r *MongoDBRepository) Get(ctx context.Context, date time.Time) (models.DailyRecord, error) {
	var record models.DailyRecord
	err := r.collection().FindOne(ctx, bson.M{"date": date}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyRecord{}, repository.ErrNotFound
	}
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("failed to load daily record: %w", err)
	}
	record.Date = record.Date.UTC()
	return record, nil
}

// Update replaces the record stored under date. The replacement may move it to a new date.
func (r *MongoDBRepository) Update(ctx context.Context, date time.Time, record models.DailyRecord) error {
	res, err := r.collection().ReplaceOne(ctx, bson.M{"date": date}, record)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateDate
	}
	if err != nil {
		return fmt.Errorf("failed to update daily record: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the record for a date.
func (r *MongoDBRepository) Delete(ctx context.Context, date time.Time) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"date": date})
	if err != nil {
		return fmt.Errorf("failed to delete daily record: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all records, newest first.
func (r *MongoDBRepository) List(ctx context.Context) ([]models.DailyRecord, error) {
	cursor, err := r.collection().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.DailyRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode daily records: %w", err)
	}
	for i := range records {
		records[i].Date = records[i].Date.UTC()
	}
	return records, nil
}

// DeleteAll wipes the collection and reports how many records were removed.
func (r *MongoDBRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear daily records: %w", err)
	}
	return res.DeletedCount, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

var _ repository.RecordRepository = (*MongoDBRepository)(nil)
