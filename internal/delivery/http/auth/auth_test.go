package http_auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/flickswipe/internal/delivery/http/common"
	service_simple_auth "github.com/humanbelnik/flickswipe/internal/service/auth/simple"
	"github.com/humanbelnik/flickswipe/internal/service/auth/simple/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type AuthControllerSuite struct {
	suite.Suite
}

func initEngine(t provider.T) (*gin.Engine, *mocks.SessionCache) {
	gin.SetMode(gin.TestMode)
	cache := mocks.NewSessionCache(t)
	engine := gin.New()
	New(service_simple_auth.New("secret", cache, time.Minute)).RegisterRoutes(engine.Group("/api/v1"))
	return engine, cache
}

func post(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func (s *AuthControllerSuite) TestAuth(t provider.T) {
	t.Run("Should hand out token", func(t provider.T) {
		engine, cache := initEngine(t)
		cache.On("Set", mock.Anything, "active", time.Minute).Return(nil).Once()

		w := post(engine, `{"code":"secret"}`)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.NotEmpty(t, w.Header().Get(http_common.HeaderAdminToken))
	})

	t.Run("Should refuse wrong code", func(t provider.T) {
		engine, _ := initEngine(t)

		w := post(engine, `{"code":"guess"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should reject empty body", func(t provider.T) {
		engine, _ := initEngine(t)

		w := post(engine, `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *AuthControllerSuite) TestLogout(t provider.T) {
	engine, cache := initEngine(t)
	cache.On("Delete", "tok").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth", nil)
	req.Header.Set(http_common.HeaderAdminToken, "tok")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthControllerSuite(t *testing.T) {
	suite.RunSuite(t, new(AuthControllerSuite))
}
