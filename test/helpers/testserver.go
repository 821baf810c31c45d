package helpers

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pathpilot_backend/database"
	"pathpilot_backend/internal/app"
	"pathpilot_backend/internal/config"
	"pathpilot_backend/internal/jobsource"
)

// TestServer - полный HTTP-стек приложения поверх изолированной
// sqlite-базы и временного корпуса вакансий
type TestServer struct {
	Server     *httptest.Server
	DB         *gorm.DB
	CorpusPath string
}

// NewTestServer поднимает приложение для интеграционных тестов
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	corpusPath := filepath.Join(dir, "jobs.json")
	seedCorpus(t, corpusPath)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-test-secret"
	cfg.JWT.TTL = 60
	cfg.Sources.CorpusPath = corpusPath
	config.AppConfig = cfg

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:     server,
		DB:         db,
		CorpusPath: corpusPath,
	}
}

func seedCorpus(t *testing.T, path string) {
	t.Helper()

	err := jobsource.SaveCorpus(path, []jobsource.RawJob{
		{
			Title:       "Data Analyst",
			Company:     "Harbor Analytics",
			Location:    "Amsterdam",
			Description: "Daily work with sql, python and dashboards.",
			ApplyURL:    "https://harbor-analytics.example/careers/data-analyst",
		},
		{
			Title:       "Backend Engineer",
			Company:     "Quellwasser GmbH",
			Location:    "Munich",
			Description: "Go and postgres backend for a payments product.",
			ApplyURL:    "https://quellwasser.example/jobs/backend",
		},
	})
	if err != nil {
		t.Fatalf("failed to seed corpus: %v", err)
	}
}
