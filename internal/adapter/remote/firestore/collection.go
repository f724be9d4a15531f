package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"doneapp/internal/core/port"
)

// Collection stores each user's todos under users/<uid>/todos/<docID>.
type Collection struct {
	client *firestore.Client
}

func NewCollection(projectID string) (*Collection, error) {
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %v", err)
	}

	return &Collection{client: client}, nil
}

func NewCollectionWithClient(client *firestore.Client) *Collection {
	return &Collection{client: client}
}

func (c *Collection) Close() error {
	return c.client.Close()
}

func (c *Collection) todos(ownerUID string) *firestore.CollectionRef {
	return c.client.Collection("users").Doc(ownerUID).Collection("todos")
}

func (c *Collection) Set(ctx context.Context, ownerUID, docID string, data map[string]interface{}) error {
	if _, err := c.todos(ownerUID).Doc(docID).Set(ctx, data); err != nil {
		return fmt.Errorf("failed to write todo document: %v", err)
	}

	return nil
}

func (c *Collection) Delete(ctx context.Context, ownerUID, docID string) error {
	if _, err := c.todos(ownerUID).Doc(docID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete todo document: %v", err)
	}

	return nil
}

func (c *Collection) GetAll(ctx context.Context, ownerUID string) ([]port.RemoteDocument, error) {
	iter := c.todos(ownerUID).Documents(ctx)

	var docs []port.RemoteDocument
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate todos: %v", err)
		}

		docs = append(docs, port.RemoteDocument{
			ID:   doc.Ref.ID,
			Data: doc.Data(),
		})
	}

	return docs, nil
}
