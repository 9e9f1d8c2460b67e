package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/google/uuid"

	"surveypulse/internal/model"
)

// BlueprintRepo handles MongoDB operations for survey blueprints
type BlueprintRepo interface {
	Create(ctx context.Context, blueprint *model.SurveyBlueprint) (string, error)
	GetByID(ctx context.Context, id string) (*model.SurveyBlueprint, error)
	ListVisibleTo(ctx context.Context, ownerID string) ([]*model.SurveyBlueprint, error)
	IncrementUsage(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type blueprintRepo struct {
	collection *mongo.Collection
}

// NewBlueprintRepo creates a new blueprint repository
func NewBlueprintRepo(db *mongo.Database) BlueprintRepo {
	return &blueprintRepo{
		collection: db.Collection("blueprints"),
	}
}

func (r *blueprintRepo) Create(ctx context.Context, blueprint *model.SurveyBlueprint) (string, error) {
	if blueprint.ID == "" {
		blueprint.ID = uuid.NewString()
	}
	blueprint.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, blueprint); err != nil {
		return "", err
	}
	return blueprint.ID, nil
}

func (r *blueprintRepo) GetByID(ctx context.Context, id string) (*model.SurveyBlueprint, error) {
	var blueprint model.SurveyBlueprint
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&blueprint)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blueprint, nil
}

func (r *blueprintRepo) ListVisibleTo(ctx context.Context, ownerID string) ([]*model.SurveyBlueprint, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"isPublic": true},
		bson.M{"ownerId": ownerID},
	}}
	opts := options.Find().SetSort(bson.D{
		{Key: "usageCount", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blueprints []*model.SurveyBlueprint
	if err := cursor.All(ctx, &blueprints); err != nil {
		return nil, err
	}
	return blueprints, nil
}

func (r *blueprintRepo) IncrementUsage(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"usageCount": 1}})
	return err
}

func (r *blueprintRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
