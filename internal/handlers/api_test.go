package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/config"
	dbpkg "github.com/WAKO-NZ/tap4service2-sub000/internal/db"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/middleware"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/notify"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/routes"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/timezone"
)

// ======================================================
// FIXTURE
// ======================================================

type apiFixture struct {
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func setupAPI(t *testing.T) *apiFixture {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		TokenTTLHours:     24,
		CancelNoticeHours: 2,
	}

	hub := notify.NewHub()
	go hub.Run()

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, hub)

	return &apiFixture{db: db, cfg: cfg, router: r}
}

func (f *apiFixture) token(t *testing.T, id uint, role string) string {
	claims := jwt.MapClaims{
		"sub":  id,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(f.cfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (f *apiFixture) seedCustomer(t *testing.T, email, password string) models.Customer {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	c := models.Customer{
		Name:         "Aroha Brown",
		Email:        email,
		PasswordHash: string(hashed),
		Address:      "12 Queen St",
		Region:       "Auckland",
	}
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func (f *apiFixture) seedTechnician(t *testing.T, email string, regions ...string) models.Technician {
	tech := models.Technician{
		Name:         "Sam Carter",
		Email:        email,
		PasswordHash: "x",
		Available:    true,
	}
	for _, r := range regions {
		tech.Regions = append(tech.Regions, models.TechnicianRegion{Region: r})
	}
	require.NoError(t, f.db.Create(&tech).Error)
	return tech
}

func futureWire(d time.Duration) string {
	return timezone.Format(timezone.Now().Add(d))
}

// ======================================================
// AUTH
// ======================================================

func TestLoginCustomer(t *testing.T) {
	f := setupAPI(t)
	f.seedCustomer(t, "aroha@example.com", "secret123")

	w := f.do(t, http.MethodPost, "/api/customers/login", "", gin.H{
		"email":    "Aroha@Example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])

	w = f.do(t, http.MethodPost, "/api/customers/login", "", gin.H{
		"email":    "aroha@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error"])
}

func TestAuthRequired(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, http.MethodGet, "/api/requests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/requests", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleEnforcement(t *testing.T) {
	f := setupAPI(t)
	customer := f.seedCustomer(t, "aroha@example.com", "secret123")
	tech := f.seedTechnician(t, "sam@example.com", "Auckland")

	// A customer cannot browse the technician job board.
	w := f.do(t, http.MethodGet, "/api/requests/available",
		f.token(t, customer.ID, middleware.RoleCustomer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A technician cannot read the customer request list.
	w = f.do(t, http.MethodGet, "/api/requests",
		f.token(t, tech.ID, middleware.RoleTechnician), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ======================================================
// REQUEST LIFECYCLE OVER HTTP
// ======================================================

func TestRequestLifecycle(t *testing.T) {
	f := setupAPI(t)
	customer := f.seedCustomer(t, "aroha@example.com", "secret123")
	tech := f.seedTechnician(t, "sam@example.com", "Auckland")
	rival := f.seedTechnician(t, "rival@example.com", "Auckland")

	customerToken := f.token(t, customer.ID, middleware.RoleCustomer)
	techToken := f.token(t, tech.ID, middleware.RoleTechnician)
	rivalToken := f.token(t, rival.ID, middleware.RoleTechnician)

	// Customer submits a request.
	w := f.do(t, http.MethodPost, "/api/requests", customerToken, gin.H{
		"description":    "Leaking kitchen tap",
		"region":         "Auckland",
		"availability_1": futureWire(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	requestID := uint(created["requestId"].(float64))
	assert.Equal(t, "pending", created["status"])
	assert.NotEmpty(t, created["paymentId"])

	// The job shows up on the technician's board.
	w = f.do(t, http.MethodGet, "/api/requests/available", techToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	// Technician accepts.
	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%d/assign", requestID), techToken, gin.H{
		"scheduled_time": futureWire(72 * time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assigned := decode(t, w)
	assert.Equal(t, "assigned", assigned["status"])
	assert.Equal(t, "authorized", assigned["paymentStatus"])

	// A rival accepting the same job loses the race.
	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%d/assign", requestID), rivalToken, gin.H{
		"scheduled_time": futureWire(72 * time.Hour),
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_assigned", decode(t, w)["error"])

	// Technician reports the work done.
	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%d/complete", requestID), techToken, gin.H{
		"note": "Replaced valve",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed_technician", decode(t, w)["status"])

	// Customer signs off; payment is captured.
	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%d/confirm", requestID), customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	confirmed := decode(t, w)
	assert.Equal(t, "completed", confirmed["status"])
	assert.Equal(t, "captured", confirmed["paymentStatus"])

	var final models.ServiceRequest
	require.NoError(t, f.db.First(&final, requestID).Error)
	assert.Equal(t, string(domain.StatusCompleted), final.Status)
	require.NotNil(t, final.TechnicianID)
	assert.Equal(t, tech.ID, *final.TechnicianID)
}

func TestCreateRequestValidationErrors(t *testing.T) {
	f := setupAPI(t)
	customer := f.seedCustomer(t, "aroha@example.com", "secret123")
	token := f.token(t, customer.ID, middleware.RoleCustomer)

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantError  string
		wantField  string
	}{
		{
			name: "unknown region",
			body: gin.H{
				"description":    "Leaking tap",
				"region":         "Queenstown",
				"availability_1": futureWire(48 * time.Hour),
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_region",
			wantField:  "region",
		},
		{
			name: "availability in the past",
			body: gin.H{
				"description":    "Leaking tap",
				"region":         "Auckland",
				"availability_1": timezone.Format(timezone.Now().Add(-time.Hour)),
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "availability_in_past",
			wantField:  "availability_1",
		},
		{
			name: "malformed availability",
			body: gin.H{
				"description":    "Leaking tap",
				"region":         "Auckland",
				"availability_1": "2026-12-25T10:00:00Z",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_availability",
			wantField:  "availability_1",
		},
		{
			name: "missing description",
			body: gin.H{
				"region":         "Auckland",
				"availability_1": futureWire(48 * time.Hour),
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/requests", token, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body["field"])
			}
		})
	}
}

func TestAssignOutsideServedRegion(t *testing.T) {
	f := setupAPI(t)
	customer := f.seedCustomer(t, "aroha@example.com", "secret123")
	tech := f.seedTechnician(t, "sam@example.com", "Wellington")

	w := f.do(t, http.MethodPost, "/api/requests",
		f.token(t, customer.ID, middleware.RoleCustomer), gin.H{
			"description":    "Leaking tap",
			"region":         "Auckland",
			"availability_1": futureWire(48 * time.Hour),
		})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := uint(decode(t, w)["requestId"].(float64))

	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%d/assign", requestID),
		f.token(t, tech.ID, middleware.RoleTechnician), gin.H{
			"scheduled_time": futureWire(72 * time.Hour),
		})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "region_not_served", decode(t, w)["error"])
}

func TestCancelForeignRequestIsNotFound(t *testing.T) {
	f := setupAPI(t)
	owner := f.seedCustomer(t, "owner@example.com", "secret123")
	stranger := f.seedCustomer(t, "stranger@example.com", "secret123")

	w := f.do(t, http.MethodPost, "/api/requests",
		f.token(t, owner.ID, middleware.RoleCustomer), gin.H{
			"description":    "Leaking tap",
			"region":         "Auckland",
			"availability_1": futureWire(48 * time.Hour),
		})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := uint(decode(t, w)["requestId"].(float64))

	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%d/cancel", requestID),
		f.token(t, stranger.ID, middleware.RoleCustomer), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "request_not_found", decode(t, w)["error"])
}

func TestInvalidIDParam(t *testing.T) {
	f := setupAPI(t)
	customer := f.seedCustomer(t, "aroha@example.com", "secret123")

	w := f.do(t, http.MethodPatch, "/api/requests/abc/cancel",
		f.token(t, customer.ID, middleware.RoleCustomer), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decode(t, w)["error"])
}

// ======================================================
// PROPOSALS OVER HTTP
// ======================================================

func TestProposalFlow(t *testing.T) {
	f := setupAPI(t)
	customer := f.seedCustomer(t, "aroha@example.com", "secret123")
	tech := f.seedTechnician(t, "sam@example.com", "Auckland")

	customerToken := f.token(t, customer.ID, middleware.RoleCustomer)
	techToken := f.token(t, tech.ID, middleware.RoleTechnician)

	w := f.do(t, http.MethodPost, "/api/requests", customerToken, gin.H{
		"description":    "Leaking tap",
		"region":         "Auckland",
		"availability_1": futureWire(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := uint(decode(t, w)["requestId"].(float64))

	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/requests/%d/assign", requestID), techToken, gin.H{
		"scheduled_time": futureWire(72 * time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Technician proposes another time.
	proposed := futureWire(96 * time.Hour)
	w = f.do(t, http.MethodPost, fmt.Sprintf("/api/requests/%d/proposals", requestID), techToken, gin.H{
		"proposed_time": proposed,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	proposalID := uint(decode(t, w)["proposalId"].(float64))

	// The customer sees it.
	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/requests/%d/proposals", requestID), customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	// Approving moves the schedule.
	w = f.do(t, http.MethodPatch,
		fmt.Sprintf("/api/requests/%d/proposals/%d", requestID, proposalID),
		customerToken, gin.H{"action": "approve"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "assigned", decode(t, w)["status"])

	var req models.ServiceRequest
	require.NoError(t, f.db.First(&req, requestID).Error)
	require.NotNil(t, req.ScheduledTime)
	assert.Equal(t, proposed, timezone.Format(*req.ScheduledTime))

	// Resolving again conflicts.
	w = f.do(t, http.MethodPatch,
		fmt.Sprintf("/api/requests/%d/proposals/%d", requestID, proposalID),
		customerToken, gin.H{"action": "decline"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "proposal_resolved", decode(t, w)["error"])
}

func TestProposalActionValidated(t *testing.T) {
	f := setupAPI(t)
	customer := f.seedCustomer(t, "aroha@example.com", "secret123")

	w := f.do(t, http.MethodPatch, "/api/requests/1/proposals/1",
		f.token(t, customer.ID, middleware.RoleCustomer), gin.H{"action": "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["error"])
}

// ======================================================
// PROFILE
// ======================================================

func TestTechnicianProfileUpdate(t *testing.T) {
	f := setupAPI(t)
	tech := f.seedTechnician(t, "sam@example.com", "Auckland")
	token := f.token(t, tech.ID, middleware.RoleTechnician)

	w := f.do(t, http.MethodGet, "/api/technicians/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPatch, "/api/technicians/me", token, gin.H{
		"regions":   []string{"wellington", "Nelson"},
		"available": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var regions []string
	require.NoError(t, f.db.Model(&models.TechnicianRegion{}).
		Where("technician_id = ?", tech.ID).
		Pluck("region", &regions).Error)
	assert.ElementsMatch(t, []string{"Wellington", "Nelson"}, regions)

	var updated models.Technician
	require.NoError(t, f.db.First(&updated, tech.ID).Error)
	assert.False(t, updated.Available)
}
