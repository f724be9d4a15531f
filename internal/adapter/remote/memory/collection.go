package memory

import (
	"context"
	"sync"

	"doneapp/internal/core/port"
)

// Collection is an in-process remote collection, used when no Firestore
// project is configured and by the service tests.
type Collection struct {
	mu    sync.RWMutex
	users map[string]map[string]map[string]interface{}

	// FailSet and FailGetAll simulate remote outages.
	FailSet    error
	FailDelete error
	FailGetAll error
}

func NewCollection() *Collection {
	return &Collection{
		users: map[string]map[string]map[string]interface{}{},
	}
}

func (c *Collection) Set(ctx context.Context, ownerUID, docID string, data map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailSet != nil {
		return c.FailSet
	}

	if c.users[ownerUID] == nil {
		c.users[ownerUID] = map[string]map[string]interface{}{}
	}

	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}

	c.users[ownerUID][docID] = copied

	return nil
}

func (c *Collection) Delete(ctx context.Context, ownerUID, docID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailDelete != nil {
		return c.FailDelete
	}

	delete(c.users[ownerUID], docID)

	return nil
}

func (c *Collection) GetAll(ctx context.Context, ownerUID string) ([]port.RemoteDocument, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.FailGetAll != nil {
		return nil, c.FailGetAll
	}

	var docs []port.RemoteDocument
	for docID, data := range c.users[ownerUID] {
		copied := make(map[string]interface{}, len(data))
		for k, v := range data {
			copied[k] = v
		}

		docs = append(docs, port.RemoteDocument{ID: docID, Data: copied})
	}

	return docs, nil
}

// Count reports how many documents a user currently has.
func (c *Collection) Count(ownerUID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.users[ownerUID])
}

// Document returns the raw stored field map for one document.
func (c *Collection) Document(ownerUID, docID string) (map[string]interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, found := c.users[ownerUID][docID]

	return data, found
}
