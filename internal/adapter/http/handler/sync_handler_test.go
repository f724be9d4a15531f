package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	. "doneapp/pkg/test"

	"doneapp/internal/adapter/database/sqlite/repository"
	"doneapp/internal/adapter/http/middleware"
	"doneapp/internal/adapter/identity"
	remotememory "doneapp/internal/adapter/remote/memory"
	"doneapp/internal/core/domain"
	"doneapp/internal/core/port"
	"doneapp/internal/core/service"
	"doneapp/internal/core/telemetry"
	pkgauth "doneapp/pkg/auth"

	factory "doneapp/pkg/test/factory"
)

type SyncHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	Remote   *remotememory.Collection
	Router   *gin.Engine
}

func (s *SyncHandlerSuite) SetupTest() {
	db := InitTestDB()
	probe := telemetry.NewNoOpProbe()

	s.UserRepo = repository.NewUserRepository(db)
	s.TodoRepo = repository.NewTodoRepository(db, probe)
	s.Remote = remotememory.NewCollection()

	syncSvc := service.NewSyncService(s.TodoRepo, s.Remote, probe)

	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())
	syncHandler := NewSyncHandler(syncSvc, metrics)

	provider := identity.NewLocalProvider(s.UserRepo, testJwtSecret)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(middleware.SessionMiddleware(provider))
	{
		protected.POST("/sync/upload", syncHandler.UploadAll)
	}

	s.Router = router
}

func TestSyncHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(SyncHandlerSuite))
}

func (s *SyncHandlerSuite) TestUploadAll() {
	user, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Email": "uploader@example.com",
	}))
	s.Require().NoError(err)

	for _, title := range []string{"one", "two", "three"} {
		_, err := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
			"Title":  title,
			"UserID": user.ID,
		}))
		s.Require().NoError(err)
	}

	jwt := pkgauth.JWT{Secret: testJwtSecret}
	token, _ := jwt.CreateToken(user.ID, user.UUID.String(), user.Email)

	req, _ := http.NewRequest("POST", "/sync/upload", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(s.Remote.Count(user.UUID.String())).To(Equal(3))
}

func (s *SyncHandlerSuite) TestUploadAllOnlySessionUser() {
	owner, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Email": "owner-sync@example.com",
	}))
	s.Require().NoError(err)

	other, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Email": "other-sync@example.com",
	}))
	s.Require().NoError(err)

	_, err = s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title":  "mine",
		"UserID": owner.ID,
	}))
	s.Require().NoError(err)

	_, err = s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title":  "theirs",
		"UserID": other.ID,
	}))
	s.Require().NoError(err)

	jwt := pkgauth.JWT{Secret: testJwtSecret}
	token, _ := jwt.CreateToken(owner.ID, owner.UUID.String(), owner.Email)

	req, _ := http.NewRequest("POST", "/sync/upload", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(s.Remote.Count(owner.UUID.String())).To(Equal(1))
	Expect(s.Remote.Count(other.UUID.String())).To(Equal(0))
}

func (s *SyncHandlerSuite) TestUploadAllWithoutToken() {
	req, _ := http.NewRequest("POST", "/sync/upload", nil)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}
