package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pms/internal/core"
	"pms/internal/database/mongodb/model"
	"pms/internal/database/mongodb/repository"
	redisRepository "pms/internal/database/redis/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func rentTenant(dueDay int, rent float64) func(*model.Tenant) {
	return func(tenant *model.Tenant) {
		tenant.Rent = rent
		tenant.LeaseDuration.DueDate = dueDay
	}
}

func TestGenerateRents_CreatesPendingRentFiveDaysBeforeDue(t *testing.T) {
	fixture := newSchedulerFixture()
	tenant := fixture.addTenant(core.TenantTypeRent, "Ravi Kumar", rentTenant(30, 12000))
	today := date(2025, time.October, 25)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, &PassReport{Scanned: 1, Created: 1, Notified: 1}, report)
	require.Len(t, fixture.rents.rents, 1)
	rent := fixture.rents.rents[0]
	assert.Equal(t, tenant.ID, rent.TenantID)
	assert.Equal(t, date(2025, time.October, 30), rent.PaymentDueDay)
	assert.Equal(t, core.RentStatusPending, rent.Status)
	assert.Equal(t, "2025-10", rent.BillingPeriod)
	assert.Equal(t, "RCPT-0001", rent.ReceiptID)
	assert.NotEmpty(t, rent.UUID)
	assert.Equal(t, "2025-10", fixture.tenants.billed[tenant.ID])

	require.Len(t, fixture.dispatcher.notices, 1)
	notice := fixture.dispatcher.notices[0]
	assert.Equal(t, "Rent Due Reminder October 2025", notice.Title)
	assert.Equal(t,
		"Ravi Kumar, your rent amount of ₹12000 for A-101 (Palm Residency) is due on Thu Oct 30 2025. Please make the payment on time to avoid penalties.",
		notice.Description,
	)
	assert.Equal(t, core.NotifyTypeRent, notice.NotifyType)
	assert.Equal(t, tenant.ID.Hex(), notice.TenantID)

	require.Len(t, fixture.recorder.activities, 1)
	activity := fixture.recorder.activities[0]
	assert.Equal(t, "Rent payment due is created", activity.Title)
	assert.Equal(t, "Ravi Kumar A-101 has rent due 2025-10-30 (₹12000)", activity.Details)
	assert.Equal(t, core.ActivityTypeRent, activity.ActivityType)
	assert.Empty(t, activity.ActorID)
}

func TestGenerateRents_RollsBackToPreviousMonth(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Anita", rentTenant(3, 8000))
	today := date(2025, time.September, 29)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	require.Len(t, fixture.rents.rents, 1)
	assert.Equal(t, date(2025, time.August, 3), fixture.rents.rents[0].PaymentDueDay)
	assert.Equal(t, "2025-08", fixture.rents.rents[0].BillingPeriod)
}

func TestGenerateRents_SkipsBeforeCreationDay(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Early", rentTenant(30, 5000))
	today := date(2025, time.October, 20)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, &PassReport{Scanned: 1, Skipped: 1}, report)
	assert.Empty(t, fixture.rents.rents)
	assert.Empty(t, fixture.dispatcher.notices)
}

func TestGenerateRents_CatchesUpAfterMissedRun(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Late", rentTenant(30, 5000))
	today := date(2025, time.October, 28)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, date(2025, time.October, 30), fixture.rents.rents[0].PaymentDueDay)
}

func TestGenerateRents_IsIdempotentWithinPeriod(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Twice", rentTenant(30, 5000))
	service := fixture.service(date(2025, time.October, 25))

	for _, day := range []int{25, 25, 26, 31} {
		_, err := service.GenerateRents(context.Background(), date(2025, time.October, day))
		require.NoError(t, err)
	}

	assert.Len(t, fixture.rents.rents, 1)
	assert.Len(t, fixture.dispatcher.notices, 1)
}

func TestGenerateRents_ExistingRentMarksTenantBilled(t *testing.T) {
	fixture := newSchedulerFixture()
	tenant := fixture.addTenant(core.TenantTypeRent, "Manual", rentTenant(30, 5000))
	fixture.rents.rents = append(fixture.rents.rents, &model.Rent{
		TenantID:      tenant.ID,
		PaymentDueDay: date(2025, time.October, 30),
	})
	today := date(2025, time.October, 25)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, fixture.rents.rents, 1)
	assert.Equal(t, "2025-10", tenant.LastBilledPeriod)
	assert.Empty(t, fixture.dispatcher.notices)
}

func TestGenerateRents_DuplicateKeyIsSkipped(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Racer", rentTenant(30, 5000))
	fixture.rents.createErr = repository.ErrRentExists
	today := date(2025, time.October, 25)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, &PassReport{Scanned: 1, Skipped: 1}, report)
	assert.Empty(t, fixture.dispatcher.notices)
}

func TestGenerateRents_SkipsOrphanedUnit(t *testing.T) {
	fixture := newSchedulerFixture()
	orphan := fixture.addTenant(core.TenantTypeRent, "Orphan", rentTenant(30, 5000))
	delete(fixture.premises.premises, orphan.Unit)
	fixture.addTenant(core.TenantTypeRent, "Housed", rentTenant(30, 7000))
	today := date(2025, time.October, 25)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, &PassReport{Scanned: 2, Created: 1, Notified: 1, Skipped: 1}, report)
	require.Len(t, fixture.rents.rents, 1)
	assert.NotEqual(t, orphan.ID, fixture.rents.rents[0].TenantID)
}

func TestGenerateRents_IgnoresInvalidDueDay(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Broken", rentTenant(0, 5000))
	today := date(2025, time.October, 25)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
}

func TestGenerateRents_DispatchFailureIsNotFatal(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Quiet", rentTenant(30, 5000))
	fixture.dispatcher.err = errors.New("push unavailable")
	fixture.recorder.err = errors.New("audit unavailable")
	today := date(2025, time.October, 25)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, &PassReport{Scanned: 1, Created: 1}, report)
	assert.Len(t, fixture.rents.rents, 1)
}

func TestGenerateRents_StoreErrorAbortsPass(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "First", rentTenant(30, 5000))
	fixture.addTenant(core.TenantTypeRent, "Second", rentTenant(30, 5000))
	fixture.rents.existsErr = errors.New("connection reset")
	today := date(2025, time.October, 25)

	report, err := fixture.service(today).GenerateRents(context.Background(), today)

	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
	assert.True(t, report.Aborted)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Failed)
}

func TestClassifyLease(t *testing.T) {
	today := date(2025, time.October, 16)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name string
		end  time.Time
		want LeaseWindow
	}{
		{"start of today", today, LeaseEndsToday},
		{"later today", today.Add(15 * time.Hour), LeaseEndsToday},
		{"yesterday", today.Add(-time.Second), LeaseExpired},
		{"exactly tomorrow", tomorrow, LeaseNone},
		{"tomorrow afternoon", tomorrow.Add(time.Hour), LeaseExpiringSoon},
		{"thirty days out", today.AddDate(0, 0, 30), LeaseExpiringSoon},
		{"past the window", today.AddDate(0, 0, 30).Add(time.Second), LeaseNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLease(tt.end, today, 30))
		})
	}
}

func TestNotifyLeases_OneNoticePerMatchingLease(t *testing.T) {
	fixture := newSchedulerFixture()
	today := date(2025, time.October, 16)
	endingOn := func(end time.Time) func(*model.Tenant) {
		return func(tenant *model.Tenant) { tenant.LeaseDuration.EndDate = &end }
	}
	fixture.addTenant(core.TenantTypeLease, "Today", endingOn(today.Add(10*time.Hour)))
	fixture.addTenant(core.TenantTypeLease, "Soon", endingOn(date(2025, time.November, 1)))
	fixture.addTenant(core.TenantTypeLease, "Gone", endingOn(date(2025, time.September, 30)))
	fixture.addTenant(core.TenantTypeLease, "Far", endingOn(date(2026, time.March, 1)))
	fixture.addTenant(core.TenantTypeLease, "Open", nil)
	fixture.addTenant(core.TenantTypeRent, "Renter", rentTenant(30, 5000))

	report, err := fixture.service(today).NotifyLeases(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, &PassReport{Scanned: 5, Notified: 3, Skipped: 2}, report)
	require.Len(t, fixture.dispatcher.notices, 3)

	titles := map[string]string{}
	for _, notice := range fixture.dispatcher.notices {
		assert.Equal(t, core.NotifyTypeLease, notice.NotifyType)
		assert.NotEmpty(t, notice.TenantID)
		titles[notice.Title] = notice.Description
	}
	assert.Equal(t, "Today's lease for A-101 at Palm Residency ends today (Thu Oct 16 2025).", titles["Lease Ends Today"])
	assert.Equal(t, "Soon's lease for A-101 at Palm Residency will expire on Sat Nov 01 2025.", titles["Lease Expiring Soon"])
	assert.Equal(t, "Gone's lease for A-101 at Palm Residency expired on Tue Sep 30 2025.", titles["Lease Expired"])
}

func TestNotifyLeases_EndingTodayProducesOnlyOneNotice(t *testing.T) {
	fixture := newSchedulerFixture()
	today := date(2025, time.October, 16)
	end := today
	fixture.addTenant(core.TenantTypeLease, "Edge", func(tenant *model.Tenant) { tenant.LeaseDuration.EndDate = &end })

	_, err := fixture.service(today).NotifyLeases(context.Background(), today)

	require.NoError(t, err)
	require.Len(t, fixture.dispatcher.notices, 1)
	assert.Equal(t, "Lease Ends Today", fixture.dispatcher.notices[0].Title)
}

func TestRun_BothPassesUnderLock(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Renter", rentTenant(30, 5000))
	end := date(2025, time.October, 20)
	fixture.addTenant(core.TenantTypeLease, "Leaser", func(tenant *model.Tenant) { tenant.LeaseDuration.EndDate = &end })

	report, err := fixture.service(time.Date(2025, time.October, 25, 0, 0, 3, 0, time.UTC)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2025-10-25", report.Today)
	require.NotNil(t, report.Rent)
	require.NotNil(t, report.Lease)
	assert.Equal(t, 1, report.Rent.Created)
	assert.Equal(t, 1, report.Lease.Notified)
	assert.Equal(t, 1, fixture.lock.acquired)
	assert.Equal(t, 1, fixture.lock.released)
}

func TestRun_SinglePass(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Renter", rentTenant(30, 5000))

	report, err := fixture.service(date(2025, time.October, 25)).Run(context.Background(), PassLease)

	require.NoError(t, err)
	assert.Nil(t, report.Rent)
	assert.NotNil(t, report.Lease)
	assert.Empty(t, fixture.rents.rents)
}

func TestRun_BusyWhenLockHeld(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Renter", rentTenant(30, 5000))
	fixture.lock.acquireErr = redisRepository.ErrLockHeld

	report, err := fixture.service(date(2025, time.October, 25)).Run(context.Background())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrSchedulerBusy)
	assert.Empty(t, fixture.rents.rents)
}

func TestRun_LockBackendDownStillBills(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.addTenant(core.TenantTypeRent, "Renter", rentTenant(30, 5000))
	fixture.lock.acquireErr = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

	report, err := fixture.service(date(2025, time.October, 25)).Run(context.Background())

	require.NoError(t, err)
	assert.NotErrorIs(t, err, ErrSchedulerBusy)
	require.NotNil(t, report.Rent)
	assert.Equal(t, 1, report.Rent.Created)
	assert.Len(t, fixture.rents.rents, 1)
	assert.Zero(t, fixture.lock.released)
}

func TestRun_PassFailuresAreJoinedAndLockReleased(t *testing.T) {
	fixture := newSchedulerFixture()
	fixture.tenants.listErr = errors.New("mongo down")

	report, err := fixture.service(date(2025, time.October, 25)).Run(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "rent pass")
	assert.ErrorContains(t, err, "lease pass")
	assert.True(t, report.Rent.Aborted)
	assert.True(t, report.Lease.Aborted)
	assert.Equal(t, 1, fixture.lock.released)
}

func TestGenerateRents_ConcurrentPassesGetDistinctReceipts(t *testing.T) {
	first := newSchedulerFixture()
	second := newSchedulerFixture()
	second.rents = first.rents
	first.addTenant(core.TenantTypeRent, "Asha", rentTenant(30, 9000))
	second.addTenant(core.TenantTypeRent, "Vikram", rentTenant(30, 11000))
	today := date(2025, time.October, 25)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, fixture := range []*schedulerFixture{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = fixture.service(today).GenerateRents(context.Background(), today)
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Len(t, first.rents.rents, 2)
	receipts := []string{first.rents.rents[0].ReceiptID, first.rents.rents[1].ReceiptID}
	assert.ElementsMatch(t, []string{"RCPT-0001", "RCPT-0002"}, receipts)
}
