package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/profilehub/backend/internal/models"
)

// FirestoreConfig carries the Firebase project settings. CredentialsJSON
// may be empty, in which case Application Default Credentials are used.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsJSON string
}

// FirestoreUserService is the primary UserStore, backed by the "users"
// collection in Cloud Firestore.
type FirestoreUserService struct {
	client   *firestore.Client
	usersCol *firestore.CollectionRef
}

func NewFirestoreUserService(ctx context.Context, cfg FirestoreConfig) (*FirestoreUserService, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	return &FirestoreUserService{
		client:   client,
		usersCol: client.Collection("users"),
	}, nil
}

func (s *FirestoreUserService) Close() error {
	return s.client.Close()
}

func (s *FirestoreUserService) Load(ctx context.Context, id string) (map[string]interface{}, error) {
	snap, err := s.usersCol.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	data := snap.Data()
	if data == nil {
		data = map[string]interface{}{}
	}
	return data, nil
}

func (s *FirestoreUserService) Save(ctx context.Context, user *models.User) error {
	_, err := s.usersCol.Doc(user.ID).Set(ctx, user.Document())
	return err
}

func (s *FirestoreUserService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	pruned := pruneUpdate(fields)
	if len(pruned) == 0 {
		return nil
	}

	updates := make([]firestore.Update, 0, len(pruned))
	for k, v := range pruned {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}

	_, err := s.usersCol.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrProfileNotFound
	}
	return err
}

func (s *FirestoreUserService) Delete(ctx context.Context, id string) error {
	_, err := s.usersCol.Doc(id).Delete(ctx)
	return err
}
