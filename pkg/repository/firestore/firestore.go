package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
)

// Firestore is the remote document store backend for the assessment
// collection.
type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.RemoteStore = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes the collection name, used to isolate test
// runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// CollectionName is the Firestore collection holding assessment documents.
const CollectionName = "risk_assessments"

func (f *Firestore) collection() string {
	if f.collectionPrefix != "" {
		return f.collectionPrefix + "_" + CollectionName
	}
	return CollectionName
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
