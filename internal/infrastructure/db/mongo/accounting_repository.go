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

const (
	accountingCollection = "user_accounting"
	additionsCollection  = "user_additions"
)

type MongoAccountingRepository struct {
	accounting *mongo.Collection
	additions  *mongo.Collection
}

func NewAccountingRepository(db *mongo.Database) *MongoAccountingRepository {
	return &MongoAccountingRepository{
		accounting: db.Collection(accountingCollection),
		additions:  db.Collection(additionsCollection),
	}
}

// EnsureIndexes creates the indexes both collections rely on: one accounting
// record per user, the salary_day scan for the daily batch, and the per-user
// additions range query.
func (r *MongoAccountingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	accountingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "salary_day", Value: 1}}},
	}
	if _, err := r.accounting.Indexes().CreateMany(ctx, accountingIndexes); err != nil {
		return err
	}

	additionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	_, err := r.additions.Indexes().CreateMany(ctx, additionIndexes)
	return err
}

type mongoAccounting struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	UserID        string               `bson:"user_id"`
	SalaryDay     int                  `bson:"salary_day"`
	MonthlySalary primitive.Decimal128 `bson:"monthly_salary"`
	Balance       primitive.Decimal128 `bson:"balance"`
	CreatedAt     int64                `bson:"created_at"`
	UpdatedAt     int64                `bson:"updated_at"`
}

type mongoAddition struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	UserID      string               `bson:"user_id"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Description string               `bson:"description,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func (r *MongoAccountingRepository) Create(ctx context.Context, rec *domain.AccountingRecord) (*domain.AccountingRecord, error) {
	salary, err := toDecimal128(rec.MonthlySalary)
	if err != nil {
		return nil, err
	}
	balance, err := toDecimal128(rec.Balance)
	if err != nil {
		return nil, err
	}

	doc := mongoAccounting{
		UserID:        rec.UserID,
		SalaryDay:     rec.SalaryDay,
		MonthlySalary: salary,
		Balance:       balance,
		CreatedAt:     rec.CreatedAt.Unix(),
		UpdatedAt:     rec.UpdatedAt.Unix(),
	}

	res, err := r.accounting.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountingExists
		}
		return nil, fmt.Errorf("insert accounting record: %w", err)
	}

	created := *rec
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAccountingRepository) FindByUserID(ctx context.Context, userID string) (*domain.AccountingRecord, error) {
	var ma mongoAccounting
	if err := r.accounting.FindOne(ctx, bson.M{"user_id": userID}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountingNotFound
		}
		return nil, fmt.Errorf("find accounting record: %w", err)
	}
	return ma.toDomain()
}

func (r *MongoAccountingRepository) AddToBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	delta, err := toDecimal128(amount)
	if err != nil {
		return err
	}

	update := bson.M{
		"$inc": bson.M{"balance": delta},
		"$set": bson.M{"updated_at": time.Now().Unix()},
	}
	res, err := r.accounting.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("add to balance: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountingNotFound
	}
	return nil
}

func (r *MongoAccountingRepository) OverwriteBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	value, err := toDecimal128(balance)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{"balance": value, "updated_at": time.Now().Unix()},
	}
	res, err := r.accounting.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("overwrite balance: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountingNotFound
	}
	return nil
}

func (r *MongoAccountingRepository) UpdateSalaryAmount(ctx context.Context, userID string, salary decimal.Decimal) error {
	value, err := toDecimal128(salary)
	if err != nil {
		return err
	}
	return r.updateField(ctx, userID, "monthly_salary", value)
}

func (r *MongoAccountingRepository) UpdateSalaryDay(ctx context.Context, userID string, day int) error {
	return r.updateField(ctx, userID, "salary_day", day)
}

func (r *MongoAccountingRepository) updateField(ctx context.Context, userID, field string, value any) error {
	update := bson.M{
		"$set": bson.M{field: value, "updated_at": time.Now().Unix()},
	}
	res, err := r.accounting.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountingNotFound
	}
	return nil
}

func (r *MongoAccountingRepository) FindAccountsDueOn(ctx context.Context, dayOfMonth int) ([]domain.SalaryDue, error) {
	cursor, err := r.accounting.Find(ctx, bson.M{"salary_day": dayOfMonth})
	if err != nil {
		return nil, fmt.Errorf("find accounts due: %w", err)
	}
	defer cursor.Close(ctx)

	var due []domain.SalaryDue
	for cursor.Next(ctx) {
		var ma mongoAccounting
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode accounting record: %w", err)
		}
		salary, err := fromDecimal128(ma.MonthlySalary)
		if err != nil {
			return nil, err
		}
		due = append(due, domain.SalaryDue{UserID: ma.UserID, MonthlySalary: salary})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts due: %w", err)
	}
	return due, nil
}

func (r *MongoAccountingRepository) AppendAddition(ctx context.Context, entry *domain.AdditionEntry) (*domain.AdditionEntry, error) {
	amount, err := toDecimal128(entry.Amount)
	if err != nil {
		return nil, err
	}

	doc := mongoAddition{
		UserID:      entry.UserID,
		Amount:      amount,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
	res, err := r.additions.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert addition: %w", err)
	}

	created := *entry
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAccountingRepository) FindAdditionsBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AdditionEntry, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.additions.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find additions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.AdditionEntry
	for cursor.Next(ctx) {
		var ma mongoAddition
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode addition: %w", err)
		}
		amount, err := fromDecimal128(ma.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.AdditionEntry{
			ID:          ma.ID.Hex(),
			UserID:      ma.UserID,
			Amount:      amount,
			Description: ma.Description,
			CreatedAt:   ma.CreatedAt.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate additions: %w", err)
	}
	return out, nil
}

func (ma mongoAccounting) toDomain() (*domain.AccountingRecord, error) {
	salary, err := fromDecimal128(ma.MonthlySalary)
	if err != nil {
		return nil, err
	}
	balance, err := fromDecimal128(ma.Balance)
	if err != nil {
		return nil, err
	}
	return &domain.AccountingRecord{
		ID:            ma.ID.Hex(),
		UserID:        ma.UserID,
		SalaryDay:     ma.SalaryDay,
		MonthlySalary: salary,
		Balance:       balance,
		CreatedAt:     unixToTime(ma.CreatedAt),
		UpdatedAt:     unixToTime(ma.UpdatedAt),
	}, nil
}
