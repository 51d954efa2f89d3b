package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Clients bundles the managed-backend handles the rest of the app depends on.
type Clients struct {
	App        *firebase.App
	Auth       *fbauth.Client
	Firestore  *firestore.Client
	Storage    *storage.Client
	BucketName string
	ProjectID  string
}

// InitClients initializes Firebase, Firestore and Cloud Storage from env.
// FIREBASE_CREDENTIALS_JSON holds the service-account JSON blob directly;
// when it is empty, Application Default Credentials are used.
func InitClients(ctx context.Context) (*Clients, error) {
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID must be set")
	}

	var opts []option.ClientOption
	if credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON"); credsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credsJSON)))
	}

	config := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}

	fs, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}

	gcs, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init cloud storage: %w", err)
	}

	log.Printf("✅ Backend connected (project: %s)", projectID)

	return &Clients{
		App:        app,
		Auth:       authClient,
		Firestore:  fs,
		Storage:    gcs,
		BucketName: os.Getenv("STORAGE_BUCKET"),
		ProjectID:  projectID,
	}, nil
}

// Close releases the underlying clients.
func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}
