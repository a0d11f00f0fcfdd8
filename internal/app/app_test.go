package app

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"learnhub_backend/internal/config"
	"learnhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func reloadTestConfig(origins ...string) *config.Config {
	return &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: origins},
		RateLimit: config.RateLimitConfig{MaxRequests: 100000, WindowMinutes: 1},
	}
}

func newReloadTestApp(t *testing.T) *App {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	a := &App{}
	a.conf.Store(reloadTestConfig("http://allowed.test"))

	router := gin.New()
	a.Router = router
	a.setupMiddlewares(router, a.Config())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	return a
}

func serveOrigin(a *App, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// 热加载协程与请求协程并发时不得竞争：配置只做整体指针替换，
// 请求拿到的旧快照不再被写
func TestApplyConfig_ConcurrentWithRequests(t *testing.T) {
	a := newReloadTestApp(t)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				a.applyConfig(reloadTestConfig("http://allowed.test"))
			}
		}
	}()

	for i := 0; i < 2000; i++ {
		if w := serveOrigin(a, "http://allowed.test"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, w.Code)
		}
	}

	close(done)
	wg.Wait()
}

// CORS白名单换入新配置后对后续请求立即生效
func TestApplyConfig_CORSOriginsTakeEffect(t *testing.T) {
	a := newReloadTestApp(t)

	if got := serveOrigin(a, "http://new.test").Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("origin outside whitelist should not be allowed, got %q", got)
	}

	a.applyConfig(reloadTestConfig("http://new.test"))

	if got := serveOrigin(a, "http://new.test").Header().Get("Access-Control-Allow-Origin"); got != "http://new.test" {
		t.Fatalf("expected reloaded origin to be allowed, got %q", got)
	}
}

// 命令行开关不来自配置文件，热加载不能把它们冲掉
func TestApplyConfig_KeepsCommandLineFlags(t *testing.T) {
	a := &App{}
	initial := reloadTestConfig("http://allowed.test")
	initial.ForceMigrate = true
	a.conf.Store(initial)

	a.applyConfig(reloadTestConfig("http://allowed.test"))

	if !a.Config().ForceMigrate {
		t.Fatal("expected ForceMigrate to survive config reload")
	}
}
