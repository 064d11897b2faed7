package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/nivelabs/loop/client/pkg/logger"
)

// Collection names on the hosted document store.
const (
	CollUsers                = "users"
	CollSessions             = "sessions"
	CollPosts                = "posts"
	CollStories              = "stories"
	CollLikes                = "likes"
	CollComments             = "comments"
	CollFollowers            = "followers"
	CollCommunities          = "communities"
	CollCommunityMembers     = "communityMembers"
	CollNotifications        = "notifications"
	CollStoryViews           = "storiesViews"
	CollVerificationRequests = "verificationRequests"
)

var (
	// ErrNotFound is returned when a document id does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when a create hits an existing id.
	ErrAlreadyExists = errors.New("document already exists")
)

// Predicate is a single equality filter on a field.
type Predicate struct {
	Field string
	Value interface{}
}

// Query describes the filtering the document store supports: equality
// predicates, a single order field and an optional limit.
type Query struct {
	Equals  []Predicate
	OrderBy string
	Desc    bool
	Limit   int64
}

func (q Query) filter() bson.M {
	f := bson.M{}
	for _, p := range q.Equals {
		f[p.Field] = p.Value
	}
	return f
}

func (q Query) findOptions() *options.FindOptions {
	opts := options.Find()
	if q.OrderBy != "" {
		order := 1
		if q.Desc {
			order = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: order}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}

// Documents is the thin pass-through to the hosted document store.
type Documents struct {
	db *mongo.Database
}

// Dial connects to the document store and verifies the connection.
func Dial(ctx context.Context, uri, database string) (*Documents, func(context.Context) error, error) {
	if uri == "" {
		return nil, nil, fmt.Errorf("document store URI not set")
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to document store: %w", err)
	}
	if err = mongoClient.Ping(dialCtx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to reach document store: %w", err)
	}

	logger.Info("connected to document store", zap.String("database", database))
	return &Documents{db: mongoClient.Database(database)}, mongoClient.Disconnect, nil
}

// NewDocuments wraps an existing database handle (used by tests).
func NewDocuments(db *mongo.Database) *Documents {
	return &Documents{db: db}
}

// List runs a query against a collection and decodes all results into out,
// which must be a pointer to a slice.
func (d *Documents) List(ctx context.Context, coll string, q Query, out interface{}) error {
	cursor, err := d.db.Collection(coll).Find(ctx, q.filter(), q.findOptions())
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

// Get fetches a single document by id.
func (d *Documents) Get(ctx context.Context, coll, id string, out interface{}) error {
	err := d.db.Collection(coll).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

// Create inserts a document. The caller supplies the id; a duplicate id maps
// to ErrAlreadyExists so create-if-absent stays a single round trip.
func (d *Documents) Create(ctx context.Context, coll string, doc interface{}) error {
	_, err := d.db.Collection(coll).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

// Update sets the given fields on a document by id.
func (d *Documents) Update(ctx context.Context, coll, id string, fields bson.M) error {
	res, err := d.db.Collection(coll).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document by id.
func (d *Documents) Delete(ctx context.Context, coll, id string) error {
	res, err := d.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of documents matching the query's predicates.
func (d *Documents) Count(ctx context.Context, coll string, q Query) (int64, error) {
	return d.db.Collection(coll).CountDocuments(ctx, q.filter())
}

// ListSafe is the "safe" wrapper used by screens that prefer an empty section
// over an error: transient store errors are logged and normalized to an empty
// result. Non-transient errors still surface.
func (d *Documents) ListSafe(ctx context.Context, coll string, q Query, out interface{}) error {
	return normalizeTransient(coll, d.List(ctx, coll, q, out))
}

func normalizeTransient(coll string, err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		logger.Warn("transient store error normalized to empty result",
			zap.String("collection", coll), zap.Error(err))
		return nil
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}
