package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-agent/domain"
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	saveTimeout = time.Second
	findTimeout = 2 * time.Second
)

// EpisodeRepo handles the persistence of episode transcripts.
type EpisodeRepo struct {
	collection *mongo.Collection
}

// NewEpisodeRepo creates a new EpisodeRepo with the given MongoDB client, database name, and collection name.
func NewEpisodeRepo(client *mongo.Client, dbName, collectionName string) *EpisodeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &EpisodeRepo{
		collection: collection,
	}
}

// episodeDocument is the stored shape of an episode. Actions and headings are kept by name.
type episodeDocument struct {
	ID        string        `bson:"_id"`
	SessionID string        `bson:"sessionId"`
	Start     game.Position `bson:"start"`
	Heading   string        `bson:"heading"`
	Actions   []string      `bson:"actions"`
	Goals     []string      `bson:"goals"`
	Grabbed   bool          `bson:"grabbed"`
	Outcome   string        `bson:"outcome"`
	Error     string        `bson:"error,omitempty"`
	StartedAt time.Time     `bson:"startedAt"`
	EndedAt   time.Time     `bson:"endedAt"`
}

func toDocument(e *dmn.Episode) episodeDocument {
	actions := make([]string, len(e.Actions))
	for n, a := range e.Actions {
		actions[n] = a.String()
	}
	return episodeDocument{
		ID:        e.ID.String(),
		SessionID: e.SessionID.String(),
		Start:     e.Start,
		Heading:   e.Heading.String(),
		Actions:   actions,
		Goals:     e.Goals,
		Grabbed:   e.Grabbed,
		Outcome:   string(e.Outcome),
		Error:     e.Error,
		StartedAt: e.StartedAt,
		EndedAt:   e.EndedAt,
	}
}

func (d episodeDocument) episode() (*dmn.Episode, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("episode id: %w", err)
	}
	sessionID, err := uuid.Parse(d.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	heading, err := game.ParseHeading(d.Heading)
	if err != nil {
		return nil, err
	}
	actions := make([]game.Action, len(d.Actions))
	for n, name := range d.Actions {
		if actions[n], err = game.ParseAction(name); err != nil {
			return nil, err
		}
	}

	return &dmn.Episode{
		ID:        id,
		SessionID: sessionID,
		Start:     d.Start,
		Heading:   heading,
		Actions:   actions,
		Goals:     d.Goals,
		Grabbed:   d.Grabbed,
		Outcome:   dmn.Outcome(d.Outcome),
		Error:     d.Error,
		StartedAt: d.StartedAt,
		EndedAt:   d.EndedAt,
	}, nil
}

// Save inserts or updates an episode in the repository.
func (r *EpisodeRepo) Save(ctx context.Context, e *dmn.Episode) error {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	doc := toDocument(e)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{
		"$set": bson.M{
			"sessionId": doc.SessionID,
			"start":     doc.Start,
			"heading":   doc.Heading,
			"actions":   doc.Actions,
			"goals":     doc.Goals,
			"grabbed":   doc.Grabbed,
			"outcome":   doc.Outcome,
			"error":     doc.Error,
			"startedAt": doc.StartedAt,
			"endedAt":   doc.EndedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("saving episode %s: %w", e.ID, err)
	}
	return nil
}

// ByID retrieves an episode by its ID.
// Returns dmn.ErrEpisodeNotFound if the episode is not stored.
func (r *EpisodeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Episode, error) {
	ctx, cancel := context.WithTimeout(ctx, findTimeout)
	defer cancel()

	filter := bson.M{"_id": id.String()}
	var doc episodeDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrEpisodeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return doc.episode()
}
