package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const healthCollection = "_health"

// FirestoreStore reads and writes documents in Cloud Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore client from a service-account JSON blob.
// An empty projectID is taken from the blob.
func NewFirestoreStore(ctx context.Context, credentialsJSON, projectID string) (*FirestoreStore, error) {
	if credentialsJSON == "" {
		return nil, fmt.Errorf("firestore credentials are required")
	}
	if projectID == "" {
		projectID = ProjectIDFromCredentials(credentialsJSON)
	}
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required: set FIREBASE_PROJECT_ID or include project_id in FIREBASE_CONFIG")
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

// ProjectIDFromCredentials extracts the project id from a service-account
// or Firebase config blob. It returns "" when none is present.
func ProjectIDFromCredentials(credentialsJSON string) string {
	var blob struct {
		ProjectID      string `json:"project_id"`
		ProjectIDCamel string `json:"projectId"`
	}
	if err := json.Unmarshal([]byte(credentialsJSON), &blob); err != nil {
		return ""
	}
	if blob.ProjectID != "" {
		return blob.ProjectID
	}
	return blob.ProjectIDCamel
}

// Get implements DocumentStore.Get
func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := validatePath("Get", collection, id); err != nil {
		return nil, err
	}

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, NewStoreError("Get", Path(collection, id), ErrDocumentNotFound)
		}
		return nil, NewStoreError("Get", Path(collection, id), err)
	}

	data := snap.Data()
	if data == nil {
		return Document{}, nil
	}
	return Document(data), nil
}

// Set implements DocumentStore.Set
func (s *FirestoreStore) Set(ctx context.Context, collection, id string, doc Document) error {
	if err := validatePath("Set", collection, id); err != nil {
		return err
	}
	if doc == nil {
		doc = Document{}
	}

	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, map[string]any(doc)); err != nil {
		return NewStoreError("Set", Path(collection, id), err)
	}
	return nil
}

// Ping reads a sentinel document; a missing document still proves connectivity
func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collection(healthCollection).Doc("ping").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return NewStoreError("Ping", Path(healthCollection, "ping"), err)
	}
	return nil
}

// Type implements DocumentStore.Type
func (s *FirestoreStore) Type() string { return string(StoreTypeFirestore) }

// Close implements DocumentStore.Close
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
