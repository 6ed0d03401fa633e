package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/auth"
	"github.com/acadsuite/campus-api/internal/config"
	"github.com/acadsuite/campus-api/internal/handler"
	"github.com/acadsuite/campus-api/internal/middleware"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
	"github.com/acadsuite/campus-api/internal/router"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

type testServer struct {
	app    *fiber.App
	db     *gorm.DB
	tokens *auth.TokenManager
}

// newTestServer wires the full application against in-memory storage, the
// same way main does against the real backends.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.College{},
		&models.Department{},
		&models.User{},
		&models.Faculty{},
		&models.Student{},
		&models.Subject{},
		&models.Room{},
		&models.Section{},
		&models.UserActivityLog{},
	))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	logger := zerolog.Nop()
	validate := testValidate()
	tokens := auth.NewTokenManager(auth.TokenManagerConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Issuer:        "campus-api-test",
	})
	denylist := auth.NewDenylist(redisClient)

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	sectionRepo := repository.NewSectionRepository(db)

	activityService := service.NewActivityService(activityRepo, userRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, denylist, activityService, validate, logger)
	userAdminService := service.NewUserAdminService(userRepo, activityService, validate, logger)
	dashboardService := service.NewDashboardService(userRepo, activityRepo, redisClient, time.Minute, logger)
	collegeService := service.NewCollegeService(
		collegeRepo, departmentRepo, facultyRepo, studentRepo, roomRepo, subjectRepo, sectionRepo, validate, logger,
	)
	departmentService := service.NewDepartmentService(departmentRepo, collegeRepo, validate, logger)
	facultyService := service.NewFacultyService(facultyRepo, departmentRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, departmentRepo, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, departmentRepo, validate, logger)
	roomService := service.NewRoomService(roomRepo, departmentRepo, validate, logger)
	sectionService := service.NewSectionService(sectionRepo, departmentRepo, validate, logger)

	cfg := config.Config{AppName: "campus-api-test", AppEnv: "test"}
	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, dashboardService, logger),
		UserAdminHandler:  handler.NewUserAdminHandler(userAdminService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		CollegeHandler:    handler.NewCollegeHandler(collegeService, logger),
		DepartmentHandler: handler.NewDepartmentHandler(departmentService, logger),
		FacultyHandler:    handler.NewFacultyHandler(facultyService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		SubjectHandler:    handler.NewSubjectHandler(subjectService, logger),
		RoomHandler:       handler.NewRoomHandler(roomService, logger),
		SectionHandler:    handler.NewSectionHandler(sectionService, logger),
		JWTMiddleware:     middleware.JWTProtected(tokens),
		OptionalJWT:       middleware.OptionalJWT(tokens),
	})

	return &testServer{app: app, db: db, tokens: tokens}
}

func testValidate() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// seedUser creates an active account directly in storage.
func (s *testServer) seedUser(t *testing.T, username string, role models.Role) models.User {
	t.Helper()
	hash, err := auth.HashPassword("Quiet-Meadow-77")
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	require.NoError(t, s.db.Create(&user).Error)
	return user
}

// accessToken issues a bearer token for the user without going through login.
func (s *testServer) accessToken(t *testing.T, user models.User) string {
	t.Helper()
	pair, err := s.tokens.IssuePair(user)
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, utils.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	return resp, envelope
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, envelope := server.request(t, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)
	require.Equal(t, "service healthy", envelope.Message)
	require.Equal(t, "campus-api-test", resp.Header.Get("X-Application"))
}

func TestMasterDataRequiresAuthentication(t *testing.T) {
	server := newTestServer(t)

	resp, envelope := server.request(t, http.MethodGet, "/api/v1/colleges", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, envelope.Success)
}

func TestCollegeWritesAreAdminOnly(t *testing.T) {
	server := newTestServer(t)
	admin := server.seedUser(t, "root", models.RoleSuperAdmin)
	student := server.seedUser(t, "student", models.RoleStudent)

	body := map[string]string{"name": "Engineering College", "code": "eng"}

	// Students can read but not write.
	resp, _ := server.request(t, http.MethodPost, "/api/v1/colleges", server.accessToken(t, student), body)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, envelope := server.request(t, http.MethodPost, "/api/v1/colleges", server.accessToken(t, admin), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, envelope.Success)

	resp, envelope = server.request(t, http.MethodGet, "/api/v1/colleges", server.accessToken(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, envelope.Pagination)
	require.Equal(t, int64(1), envelope.Pagination.Total)

	var colleges []map[string]interface{}
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &colleges))
	require.Len(t, colleges, 1)
	require.Equal(t, "ENG", colleges[0]["code"], "college codes are stored upper-case")
}

func TestLoginFlow(t *testing.T) {
	server := newTestServer(t)
	server.seedUser(t, "jdoe", models.RoleFaculty)

	resp, envelope := server.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "jdoe",
		"password": "Quiet-Meadow-77",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)

	var session struct {
		Tokens struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		} `json:"tokens"`
	}
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &session))
	require.NotEmpty(t, session.Tokens.Access)

	// The issued access token opens protected routes.
	resp, envelope = server.request(t, http.MethodGet, "/api/v1/auth/profile", session.Tokens.Access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)

	// Wrong credentials stay generic.
	resp, envelope = server.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "jdoe",
		"password": "wrong-guess-55",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, envelope.Success)
}

func TestPublicRegisterCannotGrantAdminRole(t *testing.T) {
	server := newTestServer(t)

	resp, envelope := server.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":         "intruder",
		"email":            "intruder@example.com",
		"password":         "Tidal-Harbor-9Q",
		"password_confirm": "Tidal-Harbor-9Q",
		"first_name":       "In",
		"last_name":        "Truder",
		"role":             "super_admin",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.False(t, envelope.Success)
}

func TestActivityLogsScopedByRole(t *testing.T) {
	server := newTestServer(t)
	admin := server.seedUser(t, "root", models.RoleSuperAdmin)
	student := server.seedUser(t, "student", models.RoleStudent)

	deptA := models.Department{Name: "Computer Science", Code: "CS"}
	require.NoError(t, server.db.Create(&deptA).Error)
	deptB := models.Department{Name: "Mathematics", Code: "MATH"}
	require.NoError(t, server.db.Create(&deptB).Error)

	deptAdmin := server.seedUser(t, "deptadmin", models.RoleDeptAdmin)
	require.NoError(t, server.db.Model(&models.User{}).Where("id = ?", deptAdmin.ID).
		Update("department_id", deptA.ID).Error)
	outsider := server.seedUser(t, "outsider", models.RoleFaculty)
	require.NoError(t, server.db.Model(&models.User{}).Where("id = ?", outsider.ID).
		Update("department_id", deptB.ID).Error)

	require.NoError(t, server.db.Create(&models.UserActivityLog{
		UserID: &deptAdmin.ID, Action: models.ActionLogin, Success: true,
	}).Error)
	require.NoError(t, server.db.Create(&models.UserActivityLog{
		UserID: &outsider.ID, Action: models.ActionLogin, Success: true,
	}).Error)

	resp, _ := server.request(t, http.MethodGet, "/api/v1/auth/activity-logs", server.accessToken(t, student), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, envelope := server.request(t, http.MethodGet, "/api/v1/auth/activity-logs", server.accessToken(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)
	require.NotNil(t, envelope.Pagination)
	require.Equal(t, int64(2), envelope.Pagination.Total)

	resp, envelope = server.request(t, http.MethodGet, "/api/v1/auth/activity-logs", server.accessToken(t, deptAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, envelope.Pagination)
	require.Equal(t, int64(1), envelope.Pagination.Total)
}

func TestFacultyBulkUpload(t *testing.T) {
	server := newTestServer(t)
	admin := server.seedUser(t, "root", models.RoleSuperAdmin)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "faculty.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("first_name,last_name,email,department_code\nAlice,Johnson,alice@example.com,CS\nBob,Stone,bob@example.com,CS\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/faculties/bulk-upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+server.accessToken(t, admin))

	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, server.db.Model(&models.Faculty{}).Count(&count).Error)
	require.Equal(t, int64(2), count)

	var department models.Department
	require.NoError(t, server.db.Where("code = ?", "CS").First(&department).Error)
}
