package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

const collectionPrescriptions = "prescriptions"

type PrescriptionRepository struct {
	col *mongo.Collection
}

func NewPrescriptionRepository(db *mongo.Database) *PrescriptionRepository {
	return &PrescriptionRepository{col: db.Collection(collectionPrescriptions)}
}

type mongoPrescription struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Identifier        string             `bson:"identifier"`
	Kind              string             `bson:"kind"`
	Metformin         *int               `bson:"metformin,omitempty"`
	Glimepiride       *int               `bson:"glimepiride,omitempty"`
	Vildagliptin      *int               `bson:"vildagliptin,omitempty"`
	Pioglitazone      *int               `bson:"pioglitazone,omitempty"`
	GeneralText       string             `bson:"general_text,omitempty"`
	PrescribingDoctor string             `bson:"prescribing_doctor"`
	CreatedAt         time.Time          `bson:"created_at"`
	Fulfilled         bool               `bson:"fulfilled"`
}

// Create inserts a new prescription document.
func (r *PrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainPrescription(p)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert prescription: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// List returns every prescription matching filter, oldest first.
func (r *PrescriptionRepository) List(ctx context.Context, f ports.PrescriptionFilter) ([]*domain.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, listFilter(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find prescriptions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPrescription
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode prescriptions: %w", err)
	}

	out := make([]*domain.Prescription, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// MarkFulfilled sets fulfilled=true and returns the document after the update.
func (r *PrescriptionRepository) MarkFulfilled(ctx context.Context, id string) (*domain.Prescription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPrescriptionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPrescription
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"fulfilled": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrescriptionNotFound
		}
		return nil, fmt.Errorf("fulfil prescription: %w", err)
	}
	return doc.toDomain(), nil
}

// RevertFulfilled flips the given fulfilled prescriptions back in a single
// UpdateMany. Malformed ids are skipped.
func (r *PrescriptionRepository) RevertFulfilled(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}, "fulfilled": true},
		bson.M{"$set": bson.M{"fulfilled": false}},
	)
	if err != nil {
		return 0, fmt.Errorf("revert prescriptions: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the lookup indexes on the prescriptions collection.
func (r *PrescriptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "identifier", Value: 1}}},
		{Keys: bson.D{{Key: "prescribing_doctor", Value: 1}}},
		{Keys: bson.D{{Key: "fulfilled", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func listFilter(f ports.PrescriptionFilter) bson.M {
	filter := bson.M{}
	if f.Identifier != "" {
		filter["identifier"] = f.Identifier
	}
	if f.PrescribingDoctor != "" {
		filter["prescribing_doctor"] = f.PrescribingDoctor
	}
	if f.Fulfilled != nil {
		filter["fulfilled"] = *f.Fulfilled
	}
	return filter
}

func fromDomainPrescription(p *domain.Prescription) mongoPrescription {
	return mongoPrescription{
		Identifier:        p.Identifier,
		Kind:              string(p.Kind),
		Metformin:         p.Medications.Metformin,
		Glimepiride:       p.Medications.Glimepiride,
		Vildagliptin:      p.Medications.Vildagliptin,
		Pioglitazone:      p.Medications.Pioglitazone,
		GeneralText:       p.GeneralText,
		PrescribingDoctor: p.PrescribingDoctor,
		CreatedAt:         p.CreatedAt.UTC(),
		Fulfilled:         p.Fulfilled,
	}
}

func (d mongoPrescription) toDomain() *domain.Prescription {
	return &domain.Prescription{
		ID:         d.ID.Hex(),
		Identifier: d.Identifier,
		Kind:       domain.PrescriptionKind(d.Kind),
		Medications: domain.Medications{
			Metformin:    d.Metformin,
			Glimepiride:  d.Glimepiride,
			Vildagliptin: d.Vildagliptin,
			Pioglitazone: d.Pioglitazone,
		},
		GeneralText:       d.GeneralText,
		PrescribingDoctor: d.PrescribingDoctor,
		CreatedAt:         d.CreatedAt.UTC(),
		Fulfilled:         d.Fulfilled,
	}
}
