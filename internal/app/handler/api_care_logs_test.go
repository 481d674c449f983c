package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"careledger/internal/app/carelog"
	"careledger/internal/app/ds"
	"careledger/internal/app/middleware"
	"careledger/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// test principals come from headers instead of JWT/Redis, everything past the
// middleware is the production code path
func testFamilyAuth(c *gin.Context) {
	id, err := strconv.ParseUint(c.GetHeader("X-Test-User"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
		return
	}
	c.Set(middleware.UserIDKey, uint(id))
	c.Next()
}

func testCaregiverAuth(c *gin.Context) {
	id, err := strconv.ParseUint(c.GetHeader("X-Test-Caregiver"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
		return
	}
	c.Set(middleware.CaregiverIDKey, uint(id))
	c.Next()
}

type webFixture struct {
	router *gin.Engine

	admin     ds.User
	member    ds.User
	outsider  ds.User
	recipient ds.CareRecipient
	caregiver ds.Caregiver
	other     ds.Caregiver
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	svc := carelog.NewService(repo, quiet)
	h := NewHandler(repo, svc, nil, nil, nil)

	f := &webFixture{}

	f.admin = ds.User{Email: "admin@example.com", Name: "Alice Admin", Role: ds.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&f.admin).Error)
	f.member = ds.User{Email: "member@example.com", Name: "Mark Member", Role: ds.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&f.member).Error)
	f.outsider = ds.User{Email: "outsider@example.com", Name: "Olga Outsider", Role: ds.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&f.outsider).Error)

	f.recipient = ds.CareRecipient{Name: "Rose Recipient", AdminUserID: f.admin.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&f.recipient).Error)

	f.caregiver = ds.Caregiver{Name: "Carol Caregiver", CareRecipientID: f.recipient.ID, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&f.caregiver).Error)
	f.other = ds.Caregiver{Name: "Oscar Other", CareRecipientID: f.recipient.ID, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&f.other).Error)

	require.NoError(t, repo.CreateAccessGrant(&ds.CareRecipientAccess{
		CareRecipientID: f.recipient.ID,
		UserID:          f.member.ID,
		GrantedBy:       f.admin.ID,
		GrantedAt:       time.Now(),
	}))

	router := gin.New()
	api := router.Group("/api")

	family := api.Group("/", testFamilyAuth)
	family.GET("/care-recipients/:id/care-logs", h.ApiListLogsForRecipient)
	family.GET("/care-logs/:id", h.ApiGetFamilyLog)
	family.GET("/care-logs/:id/history", h.ApiGetLogHistory)
	family.POST("/care-logs/:id/viewed", h.ApiMarkViewed)
	family.POST("/care-logs/:id/invalidate", h.ApiInvalidateLog)

	caregiver := api.Group("/caregiver", testCaregiverAuth)
	caregiver.POST("/care-logs", h.ApiCreateLog)
	caregiver.GET("/care-logs/:id", h.ApiGetOwnLog)
	caregiver.PUT("/care-logs/:id", h.ApiUpdateLog)
	caregiver.POST("/care-logs/:id/sections/:section", h.ApiSubmitSection)
	caregiver.POST("/care-logs/:id/submit", h.ApiSubmitLog)

	f.router = router
	return f
}

func (f *webFixture) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func asCaregiver(f *webFixture) map[string]string {
	return map[string]string{"X-Test-Caregiver": strconv.FormatUint(uint64(f.caregiver.ID), 10)}
}

func asUser(u ds.User) map[string]string {
	return map[string]string{"X-Test-User": strconv.FormatUint(uint64(u.ID), 10)}
}

func (f *webFixture) createLogHTTP(t *testing.T) uint {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/caregiver/care-logs", gin.H{
		"care_recipient_id": f.recipient.ID,
		"log_date":          "2024-03-15",
		"payload":           gin.H{"wake_time": "07:00", "morning_mood": "alert", "notes": "quiet morning"},
	}, asCaregiver(f))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data ds.CareLog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.ID)
	return resp.Data.ID
}

func TestCareLogRoundTripOverHTTP(t *testing.T) {
	f := newWebFixture(t)
	logID := f.createLogHTTP(t)

	// draft without sections is invisible to the family list
	w := f.do(t, http.MethodGet, fmt.Sprintf("/api/care-recipients/%d/care-logs", f.recipient.ID), nil, asUser(f.member))
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Zero(t, list.Count)

	w = f.do(t, http.MethodPost, fmt.Sprintf("/api/caregiver/care-logs/%d/sections/morning", logID), nil, asCaregiver(f))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// morning fields visible to family, daily summary still hidden
	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/care-logs/%d", logID), nil, asUser(f.member))
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Data carelog.LogView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotNil(t, view.Data.Log.WakeTime)
	assert.Equal(t, "07:00", *view.Data.Log.WakeTime)
	assert.Nil(t, view.Data.Log.Notes)
	assert.True(t, view.Data.HasUnviewedChanges)

	w = f.do(t, http.MethodPost, fmt.Sprintf("/api/care-logs/%d/viewed", logID), nil, asUser(f.member))
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, fmt.Sprintf("/api/caregiver/care-logs/%d/submit", logID), nil, asCaregiver(f))
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/care-logs/%d/history", logID), nil, asUser(f.member))
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.EqualValues(t, 3, history.Count) // create, submit_section, submit
}

func TestErrorStatusMapping(t *testing.T) {
	f := newWebFixture(t)
	logID := f.createLogHTTP(t)

	otherCaregiver := map[string]string{"X-Test-Caregiver": strconv.FormatUint(uint64(f.other.ID), 10)}

	t.Run("foreign caregiver gets 403", func(t *testing.T) {
		w := f.do(t, http.MethodPut, fmt.Sprintf("/api/caregiver/care-logs/%d", logID), gin.H{"notes": "sneaky"}, otherCaregiver)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("validation failure gets 400 with fields", func(t *testing.T) {
		w := f.do(t, http.MethodPut, fmt.Sprintf("/api/caregiver/care-logs/%d", logID), gin.H{"morning_mood": "furious"}, asCaregiver(f))
		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "morning_mood")
	})

	t.Run("unknown section gets 400", func(t *testing.T) {
		w := f.do(t, http.MethodPost, fmt.Sprintf("/api/caregiver/care-logs/%d/sections/midnight", logID), nil, asCaregiver(f))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalidating a draft gets 409", func(t *testing.T) {
		w := f.do(t, http.MethodPost, fmt.Sprintf("/api/care-logs/%d/invalidate", logID), gin.H{"reason": "too early"}, asUser(f.admin))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("editing a submitted log gets 409", func(t *testing.T) {
		w := f.do(t, http.MethodPost, fmt.Sprintf("/api/caregiver/care-logs/%d/submit", logID), nil, asCaregiver(f))
		require.Equal(t, http.StatusOK, w.Code)

		w = f.do(t, http.MethodPut, fmt.Sprintf("/api/caregiver/care-logs/%d", logID), gin.H{"notes": "too late"}, asCaregiver(f))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("member invalidation gets 403", func(t *testing.T) {
		w := f.do(t, http.MethodPost, fmt.Sprintf("/api/care-logs/%d/invalidate", logID), gin.H{"reason": "not my call"}, asUser(f.member))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("outsider read gets 403", func(t *testing.T) {
		w := f.do(t, http.MethodGet, fmt.Sprintf("/api/care-logs/%d", logID), nil, asUser(f.outsider))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown log gets 404", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/care-logs/99999", nil, asUser(f.member))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id gets 400", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/care-logs/not-a-number", nil, asUser(f.member))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing principal gets 401", func(t *testing.T) {
		w := f.do(t, http.MethodGet, fmt.Sprintf("/api/care-logs/%d", logID), nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
