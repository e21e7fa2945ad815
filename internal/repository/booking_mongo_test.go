package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/iliyamo/kids-center-booking/internal/model"
)

func sampleBooking(t *testing.T) *model.Booking {
	t.Helper()
	d, err := model.ParseDate("2025-07-05")
	require.NoError(t, err)
	return &model.Booking{
		ParentName:    "Мария Иванова",
		Phone:         "+7 999 123-45-67",
		Email:         "maria@example.com",
		ChildName:     "Саша",
		ChildAge:      6,
		GuestsCount:   8,
		PreferredDate: d,
		ProgramKey:    "pirates_treasure",
		Comment:       "Без сладкого, пожалуйста",
	}
}

func TestBookingMongoRepo_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewBookingMongoRepo(mt.DB)

		b := sampleBooking(t)
		id, err := repo.Insert(context.Background(), b)
		require.NoError(mt, err)
		assert.Len(mt, id, 24)
		assert.Equal(mt, id, b.ID)
		assert.False(mt, b.CreatedAt.IsZero())
		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err)
	})

	mt.Run("identical payloads get distinct ids", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		repo := NewBookingMongoRepo(mt.DB)

		first, err := repo.Insert(context.Background(), sampleBooking(t))
		require.NoError(mt, err)
		second, err := repo.Insert(context.Background(), sampleBooking(t))
		require.NoError(mt, err)
		assert.NotEqual(mt, first, second)
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewBookingMongoRepo(mt.DB)

		_, err := repo.Insert(context.Background(), sampleBooking(t))
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}

func TestBookingMongoRepo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("maps ids and dates", func(mt *mtest.T) {
		id1 := primitive.NewObjectID()
		id2 := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + BookingCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: id2},
				{Key: "parent_name", Value: "Олег"},
				{Key: "phone", Value: "+79990000001"},
				{Key: "child_age", Value: int32(7)},
				{Key: "preferred_date", Value: primitive.NewDateTimeFromTime(time.Date(2025, time.August, 9, 0, 0, 0, 0, time.UTC))},
				{Key: "program_key", Value: "space_odyssey"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created.Add(time.Minute))},
			},
			bson.D{
				{Key: "_id", Value: id1},
				{Key: "parent_name", Value: "Ирина"},
				{Key: "phone", Value: "+79990000002"},
				{Key: "guests_count", Value: int64(12)},
				{Key: "preferred_date", Value: "2025-09-10"},
				{Key: "program_key", Value: "fairy_unicorns"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
			},
		))
		repo := NewBookingMongoRepo(mt.DB)

		items, err := repo.List(context.Background(), 50)
		require.NoError(mt, err)
		require.Len(mt, items, 2)

		assert.Equal(mt, id2.Hex(), items[0].ID)
		assert.Equal(mt, "2025-08-09", items[0].PreferredDate.String())
		assert.Equal(mt, 7, items[0].ChildAge)
		assert.Equal(mt, id1.Hex(), items[1].ID)
		assert.Equal(mt, "2025-09-10", items[1].PreferredDate.String())
		assert.Equal(mt, 12, items[1].GuestsCount)
		assert.True(mt, created.Equal(items[1].CreatedAt))
	})

	mt.Run("skips documents it cannot map", func(mt *mtest.T) {
		good := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + BookingCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "parent_name", Value: "Пётр"},
				{Key: "preferred_date", Value: "2025-07-05 10:00"},
				{Key: "program_key", Value: "space_odyssey"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created.Add(2 * time.Minute))},
			},
			bson.D{
				{Key: "_id", Value: good},
				{Key: "parent_name", Value: "Ирина"},
				{Key: "phone", Value: "+79990000002"},
				{Key: "preferred_date", Value: "2025-09-10"},
				{Key: "program_key", Value: "fairy_unicorns"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "preferred_date", Value: true},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "child_age", Value: "six"},
			},
		))
		repo := NewBookingMongoRepo(mt.DB)

		items, err := repo.List(context.Background(), 50)
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		assert.Equal(mt, good.Hex(), items[0].ID)
		assert.Equal(mt, "2025-09-10", items[0].PreferredDate.String())
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "command find requires authentication",
		}))
		repo := NewBookingMongoRepo(mt.DB)

		_, err := repo.List(context.Background(), 50)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "requires authentication")
	})
}

func TestBookingMongoRepo_Status(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("connected", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".$cmd.listCollections", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "booking"}, {Key: "type", Value: "collection"}},
		))
		repo := NewBookingMongoRepo(mt.DB)

		st := repo.Status(context.Background())
		assert.True(mt, st.Connected)
		assert.True(mt, st.Configured)
		assert.Equal(mt, "mongodb", st.Backend)
		assert.Equal(mt, []string{"booking"}, st.Collections)
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "denied"}))
		repo := NewBookingMongoRepo(mt.DB)

		st := repo.Status(context.Background())
		assert.False(mt, st.Connected)
		assert.Contains(mt, st.Error, "denied")
		assert.Empty(mt, st.Collections)
	})
}

func TestDateFromRaw(t *testing.T) {
	tp, data, err := bson.MarshalValue("2025-01-02T15:04:05Z")
	require.NoError(t, err)
	d, err := dateFromRaw(bson.RawValue{Type: tp, Value: data})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", d.String())

	d, err = dateFromRaw(bson.RawValue{})
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	tp, data, err = bson.MarshalValue("not a date")
	require.NoError(t, err)
	_, err = dateFromRaw(bson.RawValue{Type: tp, Value: data})
	assert.Error(t, err)
}

func TestToBooking_BadDate(t *testing.T) {
	tp, data, err := bson.MarshalValue("05/07/2025")
	require.NoError(t, err)
	_, err = toBooking(bookingDocument{ID: primitive.NewObjectID(), PreferredDate: bson.RawValue{Type: tp, Value: data}})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestUnavailable(t *testing.T) {
	var u Unavailable
	_, err := u.Insert(context.Background(), &model.Booking{})
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
	_, err = u.List(context.Background(), 50)
	assert.ErrorIs(t, err, ErrStoreNotConfigured)

	st := u.Status(context.Background())
	assert.False(t, st.Configured)
	assert.False(t, st.Connected)

	down := Unavailable{Reason: errors.New("connection refused")}
	_, err = down.List(context.Background(), 50)
	assert.EqualError(t, err, "connection refused")
	assert.True(t, down.Status(context.Background()).Configured)
}
