package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	applog "github.com/iliyamo/kids-center-booking/internal/log"
	"github.com/iliyamo/kids-center-booking/internal/model"
)

// bookingDocument is the stored shape of a booking.  PreferredDate is kept
// raw because older documents may carry it as a BSON date or as a string.
type bookingDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	ParentName    string             `bson:"parent_name"`
	Phone         string             `bson:"phone"`
	Email         string             `bson:"email"`
	ChildName     string             `bson:"child_name"`
	ChildAge      int                `bson:"child_age"`
	GuestsCount   int                `bson:"guests_count"`
	PreferredDate bson.RawValue      `bson:"preferred_date"`
	ProgramKey    string             `bson:"program_key"`
	Comment       string             `bson:"comment"`
	CreatedAt     time.Time          `bson:"created_at"`
}

// BookingMongoRepo stores bookings as documents in MongoDB.  The underlying
// client is safe for concurrent use.
type BookingMongoRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewBookingMongoRepo binds the repository to the booking collection of db.
func NewBookingMongoRepo(db *mongo.Database) *BookingMongoRepo {
	return &BookingMongoRepo{db: db, coll: db.Collection(BookingCollection)}
}

// Insert stores b and returns the generated ObjectID as hex.  b.ID and
// b.CreatedAt are filled in on success.
func (r *BookingMongoRepo) Insert(ctx context.Context, b *model.Booking) (string, error) {
	doc, err := fromBooking(b, primitive.NewObjectID(), time.Now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return "", err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	b.ID = doc.ID.Hex()
	b.CreatedAt = doc.CreatedAt
	return b.ID, nil
}

// List returns up to limit bookings, newest first.  Documents that cannot be
// mapped to a booking (foreign shapes, unparseable dates) are logged and
// skipped so one bad record does not hide the rest.
func (r *BookingMongoRepo) List(ctx context.Context, limit int) ([]model.Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logger := applog.WithComponent("store")
	out := []model.Booking{}
	for cur.Next(ctx) {
		var d bookingDocument
		if err := cur.Decode(&d); err != nil {
			logger.Warn().Err(err).Str("_id", cur.Current.Lookup("_id").String()).Msg("skipping undecodable booking document")
			continue
		}
		b, err := toBooking(d)
		if err != nil {
			logger.Warn().Err(err).Msg("skipping booking document")
			continue
		}
		out = append(out, b)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Status lists up to ten collection names; a failure marks the store as
// disconnected.
func (r *BookingMongoRepo) Status(ctx context.Context) StoreStatus {
	st := StoreStatus{Backend: "mongodb", Name: r.db.Name(), Configured: true, Collections: []string{}}
	names, err := r.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Connected = true
	st.Collections = truncateNames(names)
	return st
}

func fromBooking(b *model.Booking, id primitive.ObjectID, now time.Time) (bookingDocument, error) {
	doc := bookingDocument{
		ID:          id,
		ParentName:  b.ParentName,
		Phone:       b.Phone,
		Email:       b.Email,
		ChildName:   b.ChildName,
		ChildAge:    b.ChildAge,
		GuestsCount: b.GuestsCount,
		ProgramKey:  b.ProgramKey,
		Comment:     b.Comment,
		CreatedAt:   now,
	}
	if b.PreferredDate.IsZero() {
		doc.PreferredDate = bson.RawValue{Type: bson.TypeNull}
		return doc, nil
	}
	t, data, err := bson.MarshalValue(primitive.NewDateTimeFromTime(b.PreferredDate.Time))
	if err != nil {
		return bookingDocument{}, fmt.Errorf("encode preferred_date: %w", err)
	}
	doc.PreferredDate = bson.RawValue{Type: t, Value: data}
	return doc, nil
}

// toBooking maps a stored document to the wire schema: _id becomes a hex id
// and preferred_date becomes a calendar date.
func toBooking(d bookingDocument) (model.Booking, error) {
	date, err := dateFromRaw(d.PreferredDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("%w %s: %v", ErrInvalidDocument, d.ID.Hex(), err)
	}
	return model.Booking{
		ID:            d.ID.Hex(),
		ParentName:    d.ParentName,
		Phone:         d.Phone,
		Email:         d.Email,
		ChildName:     d.ChildName,
		ChildAge:      d.ChildAge,
		GuestsCount:   d.GuestsCount,
		PreferredDate: date,
		ProgramKey:    d.ProgramKey,
		Comment:       d.Comment,
		CreatedAt:     d.CreatedAt.UTC(),
	}, nil
}

func dateFromRaw(v bson.RawValue) (model.Date, error) {
	switch v.Type {
	case 0, bson.TypeNull, bson.TypeUndefined:
		return model.Date{}, nil
	case bson.TypeDateTime:
		return model.NewDate(v.Time().UTC()), nil
	case bson.TypeString:
		s := v.StringValue()
		if len(s) > len(model.DateLayout) {
			// tolerate full timestamps written by other clients
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return model.NewDate(t.UTC()), nil
			}
		}
		return model.ParseDate(s)
	default:
		return model.Date{}, fmt.Errorf("preferred_date has unsupported type %s", v.Type)
	}
}
