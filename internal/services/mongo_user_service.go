package services

import (
	"context"
	"crypto/tls"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/profilehub/backend/internal/models"
)

// MongoUserService is an alternate UserStore over MongoDB, for deployments
// without a Firebase project. Documents keep the same shape as Firestore:
// one untyped map per user in the "users" collection, keyed by the "id"
// field.
type MongoUserService struct {
	client   *mongo.Client
	db       *mongo.Database
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, mongoURI, dbName string) (*MongoUserService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("users")

	// Best-effort index.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoUserService{
		client:   client,
		db:       db,
		usersCol: col,
	}, nil
}

func (s *MongoUserService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoUserService) Load(ctx context.Context, id string) (map[string]interface{}, error) {
	var raw bson.M
	if err := s.usersCol.FindOne(ctx, bson.M{"id": id}).Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	delete(raw, "_id")
	return normalizeDocument(raw), nil
}

func (s *MongoUserService) Save(ctx context.Context, user *models.User) error {
	_, err := s.usersCol.ReplaceOne(
		ctx,
		bson.M{"id": user.ID},
		user.Document(),
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoUserService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	pruned := pruneUpdate(fields)
	if len(pruned) == 0 {
		return nil
	}

	res, err := s.usersCol.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": pruned})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *MongoUserService) Delete(ctx context.Context, id string) error {
	_, err := s.usersCol.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// normalizeDocument rewrites driver-specific container types (bson.M,
// bson.D, bson.A) into plain maps and slices so the decoder's type checks
// behave the same as for Firestore documents.
func normalizeDocument(raw bson.M) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		return normalizeDocument(t)
	case bson.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.A:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = normalizeValue(e)
		}
		return s
	default:
		return v
	}
}
