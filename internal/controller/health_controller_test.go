package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newHealthRouter(t *testing.T, rdb *redis.Client) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	router := gin.New()
	router.GET("/api/health", NewHealthController(db, rdb).HealthCheck)
	return router
}

func healthComponents(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body struct {
		Data struct {
			Status     string                 `json:"status"`
			Components map[string]interface{} `json:"components"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if body.Data.Status != "ok" {
		t.Errorf("expected status=ok, got %q", body.Data.Status)
	}
	return body.Data.Components
}

// Redis只是缓存，宕机时健康检查仍返回200，组件状态标记为down
func TestHealthCheck_RedisDownDegrades(t *testing.T) {
	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	router := newHealthRouter(t, unreachable)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 with redis down, got %d", w.Code)
	}

	components := healthComponents(t, w)
	if components["database"] != "up" {
		t.Errorf("expected database=up, got %v", components["database"])
	}
	if components["redis"] != "down" {
		t.Errorf("expected redis=down, got %v", components["redis"])
	}
}
