package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ledgersync/internal/handlers"
	"ledgersync/internal/logger"
	"ledgersync/internal/middleware"
	"ledgersync/internal/models"
	"ledgersync/internal/services"
	"ledgersync/internal/sheets"
	syncpkg "ledgersync/internal/sync"
	"ledgersync/internal/validator"
)

const testAPIKey = "integration-test-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Sheets *fakeSheetsClient
}

// fakeSheetsClient records spreadsheet writes instead of performing them.
type fakeSheetsClient struct {
	batches   [][]sheets.CellUpdate
	cells     []sheets.CellUpdate
	failBatch bool
}

func (f *fakeSheetsClient) BatchUpdate(ctx context.Context, updates []sheets.CellUpdate) error {
	if f.failBatch {
		return errors.New("sheets api unavailable")
	}
	f.batches = append(f.batches, updates)
	return nil
}

func (f *fakeSheetsClient) UpdateCell(ctx context.Context, update sheets.CellUpdate) error {
	f.cells = append(f.cells, update)
	return nil
}

func (f *fakeSheetsClient) ReadRows(ctx context.Context, sheet string) ([]sheets.Row, error) {
	return nil, nil
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.MerchantRule{},
		&models.MerchantAlias{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	aliasService := services.NewAliasService(db)
	transactionService := services.NewTransactionService(db, aliasService)
	ruleService := services.NewRuleService(db, transactionService)

	// Sync adapters over a recording fake client
	client := &fakeSheetsClient{}
	layout := syncpkg.DefaultLayout()
	inbound := syncpkg.NewInbound(transactionService, ruleService, client, layout)
	outbound := syncpkg.NewOutbound(db, client, layout, 0)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	ruleHandler := handlers.NewRuleHandler(ruleService)
	aliasHandler := handlers.NewAliasHandler(aliasService)
	syncHandler := handlers.NewSyncHandler(inbound, outbound)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(testAPIKey))

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	rules := v1.Group("/rules")
	rules.POST("", ruleHandler.CreateRule)
	rules.GET("", ruleHandler.ListRules)
	rules.GET("/:id", ruleHandler.GetRuleByID)
	rules.PATCH("/:id", ruleHandler.UpdateRule)

	aliases := v1.Group("/aliases")
	aliases.POST("", aliasHandler.CreateAlias)
	aliases.GET("", aliasHandler.ListAliases)

	v1.POST("/events/sheet-edit", syncHandler.SheetEdit)
	v1.POST("/sync/run", syncHandler.RunSync)

	return &testApp{DB: db, Router: router, Sheets: client}
}

// request makes an authenticated HTTP request to the test router.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	return app.requestWithKey(method, path, body, testAPIKey)
}

func (app *testApp) requestWithKey(method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
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
