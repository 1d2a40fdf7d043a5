package mongo

import (
	"context"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/rdftree/pkg/cache"
	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

// Config locates the snapshot collections.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Store reads and writes graph snapshots.
type Store struct {
	client     *mongo.Client
	snapshots  *mongo.Collection
	statements *mongo.Collection
	prefixes   *mongo.Collection
}

// Connect opens a client, waits for the server to answer a ping and makes
// sure the lookup index exists.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.WithHint(
			errors.New(errors.ErrCodeInvalidConfig, "no MongoDB URI configured"),
			"set [mongo] uri in rdftree.toml or pass --mongo-uri")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to MongoDB")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return cache.Retryable(client.Ping(ctx, nil))
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping MongoDB")
	}

	s := New(client, cfg.Database, cfg.Collection)
	_, err = s.statements.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "graph", Value: 1}, {Key: "gen", Value: 1}, {Key: "seq", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create index")
	}
	return s, nil
}

// New wraps an existing client.
func New(client *mongo.Client, database, collection string) *Store {
	db := client.Database(database)
	return &Store{
		client:     client,
		snapshots:  db.Collection(collection + "_graphs"),
		statements: db.Collection(collection),
		prefixes:   db.Collection(collection + "_prefixes"),
	}
}

// Load returns the snapshot saved under name. A snapshot saved from an
// empty graph loads as an empty graph.
func (s *Store) Load(ctx context.Context, name string) (*rdf.MemGraph, error) {
	var snap snapshotDoc
	err := s.snapshots.FindOne(ctx, bson.M{"_id": name}).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find graph %s", name)
	}
	current := bson.M{"graph": name, "gen": snap.Generation}

	cur, err := s.statements.Find(ctx, current, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find statements of %s", name)
	}
	var docs []statementDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read graph %s", name)
	}

	g := rdf.NewMemGraph()
	for _, d := range docs {
		st, err := d.statement()
		if err != nil {
			return nil, err
		}
		if err := g.Add(st); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "graph %s: statement %d", name, d.Seq)
		}
	}

	pcur, err := s.prefixes.Find(ctx, current)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find prefixes of %s", name)
	}
	var prefixes []prefixDoc
	if err := pcur.All(ctx, &prefixes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read prefixes of %s", name)
	}
	for _, p := range prefixes {
		g.SetPrefix(p.Prefix, p.Namespace)
	}
	return g, nil
}

// Save replaces the snapshot name with the statements of g.
//
// The statements are written under a new generation and the snapshot
// document is switched to it afterwards, so a failed write leaves the
// previous snapshot readable. The replace is not transactional: the
// previous generation is removed after the switch, and a failure there
// leaves unreferenced documents that Load ignores.
func (s *Store) Save(ctx context.Context, name string, g rdf.Graph) error {
	gen := uuid.NewString()

	stmts := g.Statements(rdf.Pattern{})
	if len(stmts) > 0 {
		docs := make([]any, len(stmts))
		for i, st := range stmts {
			docs[i] = newStatementDoc(name, gen, i, st)
		}
		if _, err := s.statements.InsertMany(ctx, docs); err != nil {
			s.dropGeneration(ctx, name, gen)
			return errors.Wrap(errors.ErrCodeInternal, err, "insert graph %s", name)
		}
	}

	if pl, ok := g.(interface{ Prefixes() map[string]string }); ok {
		if prefixes := pl.Prefixes(); len(prefixes) > 0 {
			docs := make([]any, 0, len(prefixes))
			for _, p := range slices.Sorted(maps.Keys(prefixes)) {
				docs = append(docs, prefixDoc{Graph: name, Generation: gen, Prefix: p, Namespace: prefixes[p]})
			}
			if _, err := s.prefixes.InsertMany(ctx, docs); err != nil {
				s.dropGeneration(ctx, name, gen)
				return errors.Wrap(errors.ErrCodeInternal, err, "insert prefixes of %s", name)
			}
		}
	}

	snap := snapshotDoc{Name: name, Generation: gen, Statements: len(stmts), SavedAt: time.Now().UTC()}
	var previous snapshotDoc
	err := s.snapshots.FindOneAndReplace(ctx, bson.M{"_id": name}, snap,
		options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.Before),
	).Decode(&previous)
	switch {
	case err == mongo.ErrNoDocuments:
		return nil
	case err != nil:
		s.dropGeneration(ctx, name, gen)
		return errors.Wrap(errors.ErrCodeInternal, err, "switch graph %s", name)
	}
	s.dropGeneration(ctx, name, previous.Generation)
	return nil
}

// dropGeneration removes the statements and prefixes of one generation.
// Failures are ignored; unreferenced generations are invisible to Load.
func (s *Store) dropGeneration(ctx context.Context, name, gen string) {
	filter := bson.M{"graph": name, "gen": gen}
	_, _ = s.statements.DeleteMany(ctx, filter)
	_, _ = s.prefixes.DeleteMany(ctx, filter)
}

// Delete removes the snapshot name. Deleting a missing snapshot is not an
// error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.snapshots.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete graph %s", name)
	}
	if _, err := s.statements.DeleteMany(ctx, bson.M{"graph": name}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete statements of %s", name)
	}
	if _, err := s.prefixes.DeleteMany(ctx, bson.M{"graph": name}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete prefixes of %s", name)
	}
	return nil
}

// List returns the names of all snapshots in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	values, err := s.snapshots.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list graphs")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
