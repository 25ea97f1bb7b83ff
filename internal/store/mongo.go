// Package store persists assessments and wellness sessions to MongoDB for
// audit and review. Persistence is fire-and-forget from the engine's point
// of view: failures are logged and never surface to the request.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthlinkai/healthlink/internal/model"
)

const (
	assessmentCollection = "assessments"
	sessionCollection    = "sessions"
)

// AssessmentRecord is the audit form of a symptom analysis.
type AssessmentRecord struct {
	ID         string            `bson:"_id"`
	UserID     string            `bson:"user_id"`
	Text       string            `bson:"text"`
	Selected   []string          `bson:"selected"`
	Assessment *model.Assessment `bson:"assessment"`
	CreatedAt  time.Time         `bson:"created_at"`
}

// SessionRecord is the audit form of one wellness turn.
type SessionRecord struct {
	ID        string                  `bson:"_id"`
	UserID    string                  `bson:"user_id"`
	Message   string                  `bson:"message"`
	Turn      *model.ConversationTurn `bson:"turn"`
	AlertFlag bool                    `bson:"alert_flag"`
	CreatedAt time.Time               `bson:"created_at"`
}

// Mongo is the audit store.
type Mongo struct {
	db *mongo.Database
}

// Connect dials MongoDB and pings it.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

// SaveAssessment inserts one assessment audit record.
func (m *Mongo) SaveAssessment(ctx context.Context, userID, text string, selected []string, a *model.Assessment) error {
	rec := AssessmentRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		Text:       text,
		Selected:   selected,
		Assessment: a,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := m.db.Collection(assessmentCollection).InsertOne(ctx, rec)
	return err
}

// SaveSession inserts one wellness session audit record.
func (m *Mongo) SaveSession(ctx context.Context, userID, message string, turn *model.ConversationTurn) error {
	rec := SessionRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Turn:      turn,
		AlertFlag: turn.AlertFlag,
		CreatedAt: time.Now().UTC(),
	}
	_, err := m.db.Collection(sessionCollection).InsertOne(ctx, rec)
	return err
}

// RecentAlerts returns the most recent flagged sessions, newest first.
func (m *Mongo) RecentAlerts(ctx context.Context, limit int64) ([]SessionRecord, error) {
	cur, err := m.db.Collection(sessionCollection).Find(ctx,
		bson.M{"alert_flag": true},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []SessionRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
