package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "doneapp/pkg/test"

	"doneapp/internal/adapter/database/sqlite/repository"
	"doneapp/internal/adapter/http/middleware"
	"doneapp/internal/adapter/identity"
	"doneapp/internal/adapter/notify"
	remotememory "doneapp/internal/adapter/remote/memory"
	"doneapp/internal/core/domain"
	"doneapp/internal/core/model/response"
	"doneapp/internal/core/port"
	"doneapp/internal/core/service"
	"doneapp/internal/core/session"
	"doneapp/internal/core/telemetry"
	pkgauth "doneapp/pkg/auth"

	factory "doneapp/pkg/test/factory"
)

func sessionFor(user domain.User) *session.Session {
	return &session.Session{
		UserID: user.ID,
		UID:    user.UUID.String(),
		Email:  user.Email,
	}
}

type AlertHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	TodoSvc  port.TodoService
	Center   *notify.Center
	Router   *gin.Engine
}

func (s *AlertHandlerSuite) SetupTest() {
	db := InitTestDB()
	probe := telemetry.NewNoOpProbe()

	s.UserRepo = repository.NewUserRepository(db)
	s.TodoRepo = repository.NewTodoRepository(db, probe)
	s.Center = notify.NewCenter(notify.NewLogSink(), true)

	scheduler := service.NewAlertScheduler(s.Center)
	syncSvc := service.NewSyncService(s.TodoRepo, remotememory.NewCollection(), probe)
	s.TodoSvc = service.NewTodoService(s.TodoRepo, scheduler, syncSvc, probe)

	alertHandler := NewAlertHandler(s.TodoSvc, s.Center)

	provider := identity.NewLocalProvider(s.UserRepo, testJwtSecret)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(middleware.SessionMiddleware(provider))
	{
		protected.GET("/alerts", alertHandler.GetPendingAlerts)
	}

	s.Router = router
}

func TestAlertHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AlertHandlerSuite))
}

func (s *AlertHandlerSuite) createUser(email string) domain.User {
	user, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Email": email,
	}))
	s.Require().NoError(err)

	return user
}

func (s *AlertHandlerSuite) getAlerts(user domain.User) []response.AlertResponse {
	jwt := pkgauth.JWT{Secret: testJwtSecret}
	token, _ := jwt.CreateToken(user.ID, user.UUID.String(), user.Email)

	req, _ := http.NewRequest("GET", "/alerts", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	result := struct {
		Data []response.AlertResponse `json:"data"`
	}{}
	json.Unmarshal(body, &result)

	return result.Data
}

func (s *AlertHandlerSuite) TestGetPendingAlertsEmpty() {
	user := s.createUser("quiet@example.com")

	Expect(s.getAlerts(user)).To(BeEmpty())
}

func (s *AlertHandlerSuite) TestGetPendingAlerts() {
	user := s.createUser("busy@example.com")
	sess := sessionFor(user)

	reminder := time.Now().Add(2 * time.Hour)

	_, err := s.TodoSvc.Create(ctx, sess, domain.Todo{
		Title:        "Call dentist",
		ReminderDate: &reminder,
	})
	s.Require().NoError(err)

	_, err = s.TodoSvc.Create(ctx, sess, domain.Todo{
		Title:         "Pick up parcel",
		HasLocation:   true,
		Address:       "1 Main St",
		Latitude:      51.5,
		Longitude:     -0.1,
		NotifyOnEntry: true,
	})
	s.Require().NoError(err)

	alerts := s.getAlerts(user)

	Expect(len(alerts)).To(Equal(2))

	ids := []string{alerts[0].ID, alerts[1].ID}
	Expect(ids).To(ContainElement(HaveSuffix("-time")))
	Expect(ids).To(ContainElement(HaveSuffix("-location")))

	for _, alert := range alerts {
		if alert.Region != nil {
			Expect(alert.Title).To(Equal("Arrived at Location"))
			Expect(alert.Body).To(Equal("Don't forget: Pick up parcel"))
			Expect(alert.Region.Radius).To(Equal(domain.DefaultGeofenceRadius))
		}
	}
}

func (s *AlertHandlerSuite) TestGetPendingAlertsScopedToUser() {
	owner := s.createUser("scoped-owner@example.com")
	other := s.createUser("scoped-other@example.com")

	reminder := time.Now().Add(time.Hour)

	_, err := s.TodoSvc.Create(ctx, sessionFor(other), domain.Todo{
		Title:        "Not yours",
		ReminderDate: &reminder,
	})
	s.Require().NoError(err)

	Expect(s.getAlerts(owner)).To(BeEmpty())
	Expect(len(s.getAlerts(other))).To(Equal(1))
}
