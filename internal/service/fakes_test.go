package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pms/config"
	"pms/internal/clock"
	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/database/mongodb/repository"
	"pms/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func testConfig() *config.Configuration {
	return &config.Configuration{
		Scheduler: config.Scheduler{Timezone: "UTC"},
		App:       config.App{SecretKey: "test-secret"},
		Auth:      config.Auth{Issuer: "pms-test", TokenTTL: time.Hour},
	}
}

func fixedClock(now time.Time) clock.Clock {
	return clock.Fixed(now)
}

type fakeTenantStore struct {
	mu      sync.Mutex
	tenants []*model.Tenant
	listErr error
	billed  map[primitive.ObjectID]string
}

func (f *fakeTenantStore) ListActiveByType(_ context.Context, tenantType core.TenantType) ([]*model.Tenant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*model.Tenant
	for _, tenant := range f.tenants {
		if tenant.TenantType == tenantType && tenant.IsActive && !tenant.IsDeleted {
			out = append(out, tenant)
		}
	}
	return out, nil
}

func (f *fakeTenantStore) MarkBilled(_ context.Context, tenantID primitive.ObjectID, period string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.billed == nil {
		f.billed = map[primitive.ObjectID]string{}
	}
	f.billed[tenantID] = period
	for _, tenant := range f.tenants {
		if tenant.ID == tenantID {
			tenant.LastBilledPeriod = period
		}
	}
	return nil
}

type fakeRentStore struct {
	mu        sync.Mutex
	rents     []*model.Rent
	existsErr error
	createErr error
	seq       int64
}

func (f *fakeRentStore) ExistsForPeriod(_ context.Context, tenantID primitive.ObjectID, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, rent := range f.rents {
		if rent.TenantID == tenantID && !rent.PaymentDueDay.Before(from) && rent.PaymentDueDay.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRentStore) Create(_ context.Context, rent *model.Rent) (*model.Rent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.rents {
		if existing.TenantID == rent.TenantID && existing.BillingPeriod == rent.BillingPeriod {
			return nil, repository.ErrRentExists
		}
	}
	f.seq++
	rent.ID = primitive.NewObjectID()
	rent.ReceiptID = fmt.Sprintf(repository.ReceiptFormat, f.seq)
	f.rents = append(f.rents, rent)
	return rent, nil
}

type fakePremisesStore struct {
	premises map[primitive.ObjectID]*model.Premises
	err      error
}

func (f *fakePremisesStore) Resolve(_ context.Context, _ core.UnitType, reference primitive.ObjectID) (*model.Premises, error) {
	if f.err != nil {
		return nil, f.err
	}
	premises, ok := f.premises[reference]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return premises, nil
}

type fakeDispatcher struct {
	mu      sync.Mutex
	notices []core.Notice
	err     error
}

func (f *fakeDispatcher) Deliver(_ context.Context, notice core.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, notice)
	return nil
}

type fakeRecorder struct {
	mu         sync.Mutex
	activities []core.Activity
	err        error
}

func (f *fakeRecorder) Record(_ context.Context, activity core.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.activities = append(f.activities, activity)
	return nil
}

type fakeLock struct {
	acquireErr error
	acquired   int
	released   int
}

func (f *fakeLock) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	f.acquired++
	return func(context.Context) error {
		f.released++
		return nil
	}, nil
}

// schedulerFixture 以假的儲存層組出 SchedulerService
type schedulerFixture struct {
	tenants    *fakeTenantStore
	rents      *fakeRentStore
	premises   *fakePremisesStore
	dispatcher *fakeDispatcher
	recorder   *fakeRecorder
	lock       *fakeLock
}

func newSchedulerFixture() *schedulerFixture {
	return &schedulerFixture{
		tenants:    &fakeTenantStore{},
		rents:      &fakeRentStore{},
		premises:   &fakePremisesStore{premises: map[primitive.ObjectID]*model.Premises{}},
		dispatcher: &fakeDispatcher{},
		recorder:   &fakeRecorder{},
		lock:       &fakeLock{},
	}
}

func (f *schedulerFixture) service(now time.Time) *SchedulerService {
	return NewSchedulerService(
		zap.NewNop(),
		&telemetry.Trace{},
		nil,
		testConfig(),
		fixedClock(now),
		f.tenants,
		f.rents,
		f.premises,
		f.dispatcher,
		f.recorder,
		f.lock,
	)
}

// addTenant 建立租戶並登記其所在單位
func (f *schedulerFixture) addTenant(tenantType core.TenantType, name string, mutate func(*model.Tenant)) *model.Tenant {
	tenant := &model.Tenant{
		ID:                  primitive.NewObjectID(),
		PersonalInformation: model.PersonalInformation{FullName: name},
		TenantType:          tenantType,
		UnitType:            core.UnitTypeUnit,
		Unit:                primitive.NewObjectID(),
		IsActive:            true,
	}
	if mutate != nil {
		mutate(tenant)
	}
	f.tenants.tenants = append(f.tenants.tenants, tenant)
	f.premises.premises[tenant.Unit] = &model.Premises{
		UnitType:     core.UnitTypeUnit,
		UnitName:     "A-101",
		PropertyName: "Palm Residency",
	}
	return tenant
}
