package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindwell/internal/model"
)

// AssessmentRepo persists submitted assessments. Records are insert-only.
type AssessmentRepo interface {
	Create(ctx context.Context, a *model.Assessment) error
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	ListByStudent(ctx context.Context, studentID string, limit int64) ([]*model.Assessment, error)
	CountByRiskLevel(ctx context.Context, from, to time.Time) ([]model.RiskCount, error)
	ListByRiskLevels(ctx context.Context, levels []model.RiskLevel, limit int64) ([]*model.Assessment, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

// EnsureAssessmentIndexes creates the indexes used by history and reporting queries
func EnsureAssessmentIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("assessments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "risk_level", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *assessmentRepo) Create(ctx context.Context, a *model.Assessment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, a)
	return err
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepo) ListByStudent(ctx context.Context, studentID string, limit int64) ([]*model.Assessment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"student_id": studentID}, opts)
}

// CountByRiskLevel groups assessments created in [from, to) by risk level.
// A zero bound leaves that side open.
func (r *assessmentRepo) CountByRiskLevel(ctx context.Context, from, to time.Time) ([]model.RiskCount, error) {
	pipeline := mongo.Pipeline{}
	if window := createdWithin(from, to); len(window) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"created_at": window}}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$risk_level"},
		{Key: "count", Value: bson.M{"$sum": 1}},
	}}})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []model.RiskCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func createdWithin(from, to time.Time) bson.M {
	window := bson.M{}
	if !from.IsZero() {
		window["$gte"] = from
	}
	if !to.IsZero() {
		window["$lt"] = to
	}
	return window
}

func (r *assessmentRepo) ListByRiskLevels(ctx context.Context, levels []model.RiskLevel, limit int64) ([]*model.Assessment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"risk_level": bson.M{"$in": levels}}, opts)
}

func (r *assessmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Assessment, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*model.Assessment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
