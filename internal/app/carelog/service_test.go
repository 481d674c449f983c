package carelog

import (
	"io"
	"sync"
	"testing"
	"time"

	"careledger/internal/app/ds"
	"careledger/internal/app/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeClock lets tests separate events by more than the watermark's
// one-second resolution without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	svc   *Service
	repo  *repository.Repository
	db    *gorm.DB
	clock *fakeClock

	admin    ds.User
	member   ds.User
	outsider ds.User

	recipient      ds.CareRecipient
	caregiver      ds.Caregiver
	otherCaregiver ds.Caregiver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ds.User{},
		&ds.CareRecipient{},
		&ds.Caregiver{},
		&ds.CareRecipientAccess{},
		&ds.CareLog{},
		&ds.AuditEntry{},
		&ds.ViewRecord{},
	))

	repo := repository.NewWithDB(db)

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	svc := NewService(repo, quiet)
	clock := newFakeClock()
	svc.now = clock.Now

	f := &fixture{svc: svc, repo: repo, db: db, clock: clock}

	f.admin = ds.User{Email: "admin@example.com", Name: "Alice Admin", Role: ds.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&f.admin).Error)
	f.member = ds.User{Email: "member@example.com", Name: "Mark Member", Role: ds.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&f.member).Error)
	f.outsider = ds.User{Email: "outsider@example.com", Name: "Olga Outsider", Role: ds.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&f.outsider).Error)

	f.recipient = ds.CareRecipient{Name: "Rose Recipient", AdminUserID: f.admin.ID, CreatedAt: clock.Now()}
	require.NoError(t, db.Create(&f.recipient).Error)

	f.caregiver = ds.Caregiver{Name: "Carol Caregiver", CareRecipientID: f.recipient.ID, IsActive: true, CreatedAt: clock.Now()}
	require.NoError(t, db.Create(&f.caregiver).Error)
	f.otherCaregiver = ds.Caregiver{Name: "Oscar Other", CareRecipientID: f.recipient.ID, IsActive: true, CreatedAt: clock.Now()}
	require.NoError(t, db.Create(&f.otherCaregiver).Error)

	require.NoError(t, repo.CreateAccessGrant(&ds.CareRecipientAccess{
		CareRecipientID: f.recipient.ID,
		UserID:          f.member.ID,
		GrantedBy:       f.admin.ID,
		GrantedAt:       clock.Now(),
	}))

	return f
}

func (f *fixture) createDraft(t *testing.T, payload *UpdatePayload) *ds.CareLog {
	t.Helper()
	log, err := f.svc.CreateLog(f.caregiver.ID, f.recipient.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), payload)
	require.NoError(t, err)
	return log
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
