package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

const expenseCollection = "expenses"

type MongoExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *MongoExpenseRepository {
	return &MongoExpenseRepository{coll: db.Collection(expenseCollection)}
}

// EnsureIndexes creates the indexes backing the per-user range and
// recurring-expense queries.
func (r *MongoExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_recurrent", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

type mongoExpense struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	UserID      string               `bson:"user_id"`
	Name        string               `bson:"name,omitempty"`
	Category    string               `bson:"category,omitempty"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Date        time.Time            `bson:"date"`
	Description string               `bson:"description,omitempty"`
	Recurrent   bool                 `bson:"is_recurrent"`
}

func (r *MongoExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	doc, err := toMongoExpense(*expense)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	created := *expense
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoExpenseRepository) CreateMany(ctx context.Context, expenses []domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	docs := make([]any, 0, len(expenses))
	for _, e := range expenses {
		doc, err := toMongoExpense(e)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert expenses: %w", err)
	}
	return nil
}

func (r *MongoExpenseRepository) FindBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Expense, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Expense
	for cursor.Next(ctx) {
		var me mongoExpense
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		expense, err := me.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, expense)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *MongoExpenseRepository) FindRecurringAmounts(ctx context.Context, userID string) ([]decimal.Decimal, error) {
	filter := bson.M{"user_id": userID, "is_recurrent": true}
	opts := options.Find().SetProjection(bson.M{"amount": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find recurring expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var amounts []decimal.Decimal
	for cursor.Next(ctx) {
		var me mongoExpense
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode recurring expense: %w", err)
		}
		amount, err := fromDecimal128(me.Amount)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, amount)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurring expenses: %w", err)
	}
	return amounts, nil
}

func (r *MongoExpenseRepository) Delete(ctx context.Context, userID, expenseID string) error {
	oid, err := primitive.ObjectIDFromHex(expenseID)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	// The user filter makes ownership part of the delete itself.
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func toMongoExpense(e domain.Expense) (mongoExpense, error) {
	amount, err := toDecimal128(e.Amount)
	if err != nil {
		return mongoExpense{}, err
	}
	return mongoExpense{
		UserID:      e.UserID,
		Name:        e.Name,
		Category:    string(e.Category),
		Amount:      amount,
		Date:        e.Date,
		Description: e.Description,
		Recurrent:   e.Recurrent,
	}, nil
}

func (me mongoExpense) toDomain() (domain.Expense, error) {
	amount, err := fromDecimal128(me.Amount)
	if err != nil {
		return domain.Expense{}, err
	}
	return domain.Expense{
		ID:          me.ID.Hex(),
		UserID:      me.UserID,
		Name:        me.Name,
		Category:    domain.ExpenseCategory(me.Category),
		Amount:      amount,
		Date:        me.Date.UTC(),
		Description: me.Description,
		Recurrent:   me.Recurrent,
	}, nil
}
