package repository

import (
	"context"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository handles the assistant transcript collection.
type ConversationRepository struct {
	collection *mongo.Collection
}

// NewConversationRepository creates a new instance of ConversationRepository.
func NewConversationRepository(db *mongo.Database) *ConversationRepository {
	return &ConversationRepository{
		collection: db.Collection("conversations"),
	}
}

// CreateConversation stores one assistant exchange.
func (r *ConversationRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.At = time.Now()

	result, err := r.collection.InsertOne(ctx, conv)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert conversation")
		return err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		conv.ID = insertedID
	}
	return nil
}

// GetTranscript returns the transcript, newest exchange first.
func (r *ConversationRepository) GetTranscript(ctx context.Context) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch transcript")
		return nil, err
	}
	defer cursor.Close(ctx)

	var transcript []models.Conversation
	if err := cursor.All(ctx, &transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// ClearTranscript deletes the stored transcript.
func (r *ConversationRepository) ClearTranscript(ctx context.Context) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to clear transcript")
		return err
	}

	logger.Log.WithField("count", result.DeletedCount).Info("Transcript cleared")
	return nil
}
