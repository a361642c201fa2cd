package repository

import (
	"context"
	"testing"
	"time"

	"pms/internal/core"
	client "pms/internal/database/client"
	"pms/internal/database/mongodb/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockTest(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func namespace(collection core.MongoCollection) string {
	return string(core.MongoDBPropertyOps) + "." + string(collection)
}

func TestCounterRepository_Next(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("returns incremented sequence", func(mt *mtest.T) {
		counters := NewCounterRepository(client.WrapMongoClient(mt.Client, ""))
		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bson.D{{Key: "name", Value: "receiptId"}, {Key: "seq", Value: int64(42)}}},
		))

		seq, err := counters.Next(context.Background(), core.CounterReceiptID)
		require.NoError(mt, err)
		assert.Equal(mt, int64(42), seq)
	})

	mt.Run("increments server side in a single findAndModify", func(mt *mtest.T) {
		counters := NewCounterRepository(client.WrapMongoClient(mt.Client, ""))
		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bson.D{{Key: "name", Value: "receiptId"}, {Key: "seq", Value: int64(1)}}},
		))

		_, err := counters.Next(context.Background(), core.CounterReceiptID)
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		assertAtomicIncrement(mt, started.Command)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("propagates command error", func(mt *mtest.T) {
		counters := NewCounterRepository(client.WrapMongoClient(mt.Client, ""))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		_, err := counters.Next(context.Background(), core.CounterReceiptID)
		assert.Error(mt, err)
	})
}

// assertAtomicIncrement findAndModify 必須是 {$inc: {seq: 1}}、upsert、回傳新值
func assertAtomicIncrement(mt *mtest.T, command bson.Raw) {
	mt.Helper()
	var findAndModify struct {
		Query  bson.M `bson:"query"`
		Update bson.M `bson:"update"`
		Upsert bool   `bson:"upsert"`
		New    bool   `bson:"new"`
	}
	require.NoError(mt, bson.Unmarshal(command, &findAndModify))
	assert.Equal(mt, "receiptId", findAndModify.Query["name"])
	assert.True(mt, findAndModify.Upsert)
	assert.True(mt, findAndModify.New)
	require.Len(mt, findAndModify.Update, 1)
	increment, ok := findAndModify.Update["$inc"].(bson.M)
	require.True(mt, ok, "update must be a $inc document")
	require.Len(mt, increment, 1)
	assert.EqualValues(mt, 1, increment["seq"])
}

func TestRentRepository_Create(t *testing.T) {
	mt := newMockTest(t)
	rentsNamespace := namespace(core.MongoCollectionRents)

	mt.Run("assigns receipt id from counter", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		rents := NewRentRepository(mongoClient, NewCounterRepository(mongoClient))
		mt.ClearEvents()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, rentsNamespace, mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "name", Value: "receiptId"}, {Key: "seq", Value: int64(7)}}}),
			mtest.CreateSuccessResponse(),
		)

		rent, err := rents.Create(context.Background(), &model.Rent{
			TenantID:      primitive.NewObjectID(),
			BillingPeriod: "2025-10",
			Status:        core.RentStatusPending,
		})
		require.NoError(mt, err)
		assert.Equal(mt, "RCPT-0007", rent.ReceiptID)
		assert.False(mt, rent.ID.IsZero())
		assert.False(mt, rent.CreatedAt.IsZero())

		assert.Equal(mt, "aggregate", mt.GetStartedEvent().CommandName)
		counter := mt.GetStartedEvent()
		assert.Equal(mt, "findAndModify", counter.CommandName)
		assertAtomicIncrement(mt, counter.Command)
		assert.Equal(mt, "insert", mt.GetStartedEvent().CommandName)
	})

	mt.Run("already billed period does not consume a receipt number", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		rents := NewRentRepository(mongoClient, NewCounterRepository(mongoClient))
		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, rentsNamespace, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(1)}},
		))

		_, err := rents.Create(context.Background(), &model.Rent{
			TenantID:      primitive.NewObjectID(),
			BillingPeriod: "2025-10",
		})
		assert.ErrorIs(mt, err, ErrRentExists)

		assert.Equal(mt, "aggregate", mt.GetStartedEvent().CommandName)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("duplicate billing period maps to ErrRentExists", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		rents := NewRentRepository(mongoClient, NewCounterRepository(mongoClient))
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, rentsNamespace, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: pms.rents index: uniq_tenant_period",
			}),
		)

		_, err := rents.Create(context.Background(), &model.Rent{
			TenantID:      primitive.NewObjectID(),
			ReceiptID:     "RCPT-0001",
			BillingPeriod: "2025-10",
		})
		assert.ErrorIs(mt, err, ErrRentExists)
	})
}

func TestRentRepository_ExistsForPeriod(t *testing.T) {
	mt := newMockTest(t)
	from := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mt.Run("found", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		rents := NewRentRepository(mongoClient, NewCounterRepository(mongoClient))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(core.MongoCollectionRents), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(1)}},
		))

		exists, err := rents.ExistsForPeriod(context.Background(), primitive.NewObjectID(), from, to)
		require.NoError(mt, err)
		assert.True(mt, exists)
	})

	mt.Run("none", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		rents := NewRentRepository(mongoClient, NewCounterRepository(mongoClient))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(core.MongoCollectionRents), mtest.FirstBatch))

		exists, err := rents.ExistsForPeriod(context.Background(), primitive.NewObjectID(), from, to)
		require.NoError(mt, err)
		assert.False(mt, exists)
	})
}

func TestTenantRepository_MarkBilled(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("updates tenant", func(mt *mtest.T) {
		tenants := NewTenantRepository(client.WrapMongoClient(mt.Client, ""))
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, tenants.MarkBilled(context.Background(), primitive.NewObjectID(), "2025-10"))
	})

	mt.Run("missing tenant", func(mt *mtest.T) {
		tenants := NewTenantRepository(client.WrapMongoClient(mt.Client, ""))
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := tenants.MarkBilled(context.Background(), primitive.NewObjectID(), "2025-10")
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}

func TestTenantRepository_SumField(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("empty collection sums to zero", func(mt *mtest.T) {
		tenants := NewTenantRepository(client.WrapMongoClient(mt.Client, ""))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(core.MongoCollectionTenants), mtest.FirstBatch))

		total, err := tenants.SumField(context.Background(), "deposit")
		require.NoError(mt, err)
		assert.Zero(mt, total)
	})

	mt.Run("reads total", func(mt *mtest.T) {
		tenants := NewTenantRepository(client.WrapMongoClient(mt.Client, ""))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(core.MongoCollectionTenants), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 150000.5}},
		))

		total, err := tenants.SumField(context.Background(), "deposit")
		require.NoError(mt, err)
		assert.Equal(mt, 150000.5, total)
	})
}

func TestReportRepository_LeaseStats(t *testing.T) {
	mt := newMockTest(t)
	today := time.Date(2025, time.October, 16, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, time.October, 31, 23, 59, 59, 0, time.UTC)

	mt.Run("decodes facets", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		reports := NewReportRepository(mongoClient, NewTenantRepository(mongoClient), NewPremisesRepository(mongoClient))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(core.MongoCollectionTenants), mtest.FirstBatch,
			bson.D{
				{Key: "activeLeases", Value: bson.A{bson.D{{Key: "n", Value: int32(4)}}}},
				{Key: "expiredLeases", Value: bson.A{bson.D{{Key: "n", Value: int32(2)}}}},
				{Key: "expiringSoonThisMonth", Value: bson.A{}},
				{Key: "totalDeposit", Value: bson.A{bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 90000.0}}}},
			},
		))

		stats, err := reports.LeaseStats(context.Background(), today, monthEnd)
		require.NoError(mt, err)
		assert.Equal(mt, model.LeaseStats{
			ActiveLeases:       4,
			ExpiredLeases:      2,
			TotalDepositAmount: 90000,
		}, stats)
	})
}

func TestReportRepository_UnitOccupancy(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("no units", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		reports := NewReportRepository(mongoClient, NewTenantRepository(mongoClient), NewPremisesRepository(mongoClient))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(core.MongoCollectionUnits), mtest.FirstBatch))

		occupancy, err := reports.UnitOccupancy(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, model.UnitOccupancy{}, occupancy)
	})

	mt.Run("counts occupied", func(mt *mtest.T) {
		mongoClient := client.WrapMongoClient(mt.Client, "")
		reports := NewReportRepository(mongoClient, NewTenantRepository(mongoClient), NewPremisesRepository(mongoClient))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(core.MongoCollectionUnits), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "totalUnits", Value: int32(10)}, {Key: "occupiedUnits", Value: int32(7)}},
		))

		occupancy, err := reports.UnitOccupancy(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, model.UnitOccupancy{TotalUnits: 10, OccupiedUnits: 7}, occupancy)
	})
}

func TestDueWindowFilter(t *testing.T) {
	from := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, dueWindowFilter(DueWindow{}))
	assert.Equal(t, bson.M{"paymentDueDay": bson.M{"$gte": from}}, dueWindowFilter(DueWindow{From: &from}))
}

func TestDatePart(t *testing.T) {
	assert.Equal(t, bson.M{"$month": "$createdAt"}, datePart("$month", "$createdAt", ""))
	assert.Equal(t,
		bson.M{"$year": bson.M{"date": "$createdAt", "timezone": "Asia/Kolkata"}},
		datePart("$year", "$createdAt", "Asia/Kolkata"),
	)
}
