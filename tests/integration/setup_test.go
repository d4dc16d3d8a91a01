package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pesaguru/internal/clock"
	"pesaguru/internal/handlers"
	"pesaguru/internal/logger"
	"pesaguru/internal/middleware"
	"pesaguru/internal/models"
	"pesaguru/internal/services"
	"pesaguru/internal/testutil"
	"pesaguru/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	clk := clock.System{}
	goalService := services.NewGoalService(db, clk)
	budgetService := services.NewBudgetService(db, clk)
	analyticsService := services.NewAnalyticsService(db, clk)
	auditService := services.NewAuditService(db)

	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/wellness", goalHandler.GetWellness)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contributions", goalHandler.AddContribution)
	goals.GET("/:id/forecast", goalHandler.GetForecast)

	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.POST("/:id/expenses", budgetHandler.RecordExpense)
	budgets.GET("/:id/expenses", budgetHandler.GetExpenses)
	budgets.GET("/:id/summary", budgetHandler.GetBudgetSummary)

	analytics := v1.Group("/analytics")
	analytics.GET("/spending-trends", analyticsHandler.GetSpendingTrends)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// authedUser creates a user and signs an access token for it, the same way
// the identity service would.
func (app *testApp) authedUser(t *testing.T) (*models.User, string) {
	t.Helper()

	user := testutil.CreateTestUser(t, app.DB)
	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign access token: %v", err)
	}
	return user, token
}

// requireStatus fails the test when the recorded status differs, dumping the
// body for context.
func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d\nbody: %s", want, rec.Code, rec.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/goals", "", "")
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = app.request("GET", "/api/v1/goals", "", "not-a-valid-token")
	requireStatus(t, rec, http.StatusUnauthorized)
}
