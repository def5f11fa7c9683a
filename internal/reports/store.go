package reports

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const renderedCollection = "rendered_reports"

// RenderedReport is one render log row.
type RenderedReport struct {
	UserID    int64     `bson:"user_id"`
	Payload   bson.M    `bson:"payload"`
	FileName  string    `bson:"file_name"`
	Link      string    `bson:"link"`
	CreatedAt time.Time `bson:"created_at"`
}

// RenderLog records rendered reports and answers per-user history
// queries.
type RenderLog interface {
	Insert(ctx context.Context, report *RenderedReport) error
	ListByUser(ctx context.Context, userID int64) ([]RenderedReport, error)
}

// MongoRenderLog keeps the render log in the rendered_reports
// collection.
type MongoRenderLog struct {
	col *mongo.Collection
}

var _ RenderLog = (*MongoRenderLog)(nil)

func NewMongoRenderLog(db *mongo.Database) *MongoRenderLog {
	return &MongoRenderLog{col: db.Collection(renderedCollection)}
}

func (l *MongoRenderLog) Insert(ctx context.Context, report *RenderedReport) error {
	_, err := l.col.InsertOne(ctx, report)
	return err
}

func (l *MongoRenderLog) ListByUser(ctx context.Context, userID int64) ([]RenderedReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := l.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []RenderedReport
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
