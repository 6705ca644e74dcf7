package config

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// Every storage call is bounded; an overrun surfaces as ServiceUnavailable
// instead of hanging the request.
const queryTimeout = 5 * time.Second

/*
* Connect to mongo with a fail-fast server selection timeout
* Ping so a dead server is caught at startup, not on the first request
 */
func ConnectDB() error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "medconnect"
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(queryTimeout))
	if err != nil {
		return err
	}
	if err := c.Ping(ctx, nil); err != nil {
		return err
	}
	client = c
	database = c.Database(dbName)
	log.Println("MongoDB connected to", uri)
	return nil
}

func DisconnectDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func OpenCollection(name string) *mongo.Collection {
	return database.Collection(name)
}

/*
* Unique index on users.email
* Duplicate signups then fail at the storage layer even under races
 */
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err := OpenCollection(util.UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return util.ServiceUnavailable(util.STORAGE_TIMEOUT)
	}
	return err
}

func FindOne(ctx context.Context, coll *mongo.Collection, filter bson.M, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return wrapStorageErr(coll.FindOne(ctx, filter).Decode(out))
}

func FindAll(ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return wrapStorageErr(err)
	}
	return wrapStorageErr(cursor.All(ctx, out))
}

func CreateOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (*mongo.InsertOneResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := coll.InsertOne(ctx, doc)
	return result, wrapStorageErr(err)
}

func UpdateOne(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := coll.UpdateOne(ctx, filter, update)
	return result, wrapStorageErr(err)
}

/*
* Atomic read-modify-write: the filter carries the expected current state,
* so of two racing transitions exactly one matches and wins
 */
func FindOneAndUpdate(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return wrapStorageErr(coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(out))
}

func DeleteOne(ctx context.Context, coll *mongo.Collection, filter bson.M) (*mongo.DeleteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := coll.DeleteOne(ctx, filter)
	return result, wrapStorageErr(err)
}

func DeleteMany(ctx context.Context, coll *mongo.Collection, filter bson.M) (*mongo.DeleteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := coll.DeleteMany(ctx, filter)
	return result, wrapStorageErr(err)
}

// IsDuplicateKey reports whether err is a unique-index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
