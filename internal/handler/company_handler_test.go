package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"collabhub/internal/apperror"
	"collabhub/internal/authz"
	"collabhub/internal/config"
	"collabhub/internal/handler"
	"collabhub/internal/middleware"
	"collabhub/internal/model"
	"collabhub/internal/service"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return user, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByRole(_ context.Context, role model.Role) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == role {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, _ bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

func (r *memUserRepo) EnsureIndexes(_ context.Context) error { return nil }

type memCompanyRepo struct {
	mu        sync.Mutex
	companies map[primitive.ObjectID]model.Company
}

func (r *memCompanyRepo) Create(_ context.Context, company *model.Company) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if company.ID.IsZero() {
		company.ID = primitive.NewObjectID()
	}
	r.companies[company.ID] = *company
	return company, nil
}

func (r *memCompanyRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *memCompanyRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return 0, nil
	}
	delete(r.companies, id)
	return 1, nil
}

type companyFixture struct {
	router     *gin.Engine
	userRepo   *memUserRepo
	superAdmin model.User
	employee   model.User
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	policy, err := authz.NewPolicy()
	require.NoError(t, err)

	userRepo := &memUserRepo{users: make(map[primitive.ObjectID]model.User)}
	companyRepo := &memCompanyRepo{companies: make(map[primitive.ObjectID]model.Company)}

	users := service.NewUserService(userRepo, policy, &config.Config{}, zap.NewNop())
	companies := service.NewCompanyService(companyRepo, policy)
	h := handler.NewCompanyHandler(companies, zap.NewNop())

	router := gin.New()
	api := router.Group("/api")
	acted := api.Group("")
	acted.Use(middleware.RequireActor(users))
	acted.POST("/companies", h.Create)
	acted.DELETE("/companies/:id", h.Delete)
	api.GET("/companies/:id", h.Get)

	superAdmin, err := userRepo.Create(context.Background(), &model.User{
		Name: "Root", Email: "root@example.com", Role: model.RoleSuperAdmin,
	})
	require.NoError(t, err)
	employee, err := userRepo.Create(context.Background(), &model.User{
		Name: "Worker", Email: "worker@example.com", Role: model.RoleEmployee, CompanyID: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	return &companyFixture{
		router:     router,
		userRepo:   userRepo,
		superAdmin: *superAdmin,
		employee:   *employee,
	}
}

func (f *companyFixture) do(method, path, actorID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set("X-User-ID", actorID)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCompanyHandler_Create(t *testing.T) {
	t.Run("admin actor creates company", func(t *testing.T) {
		f := newCompanyFixture(t)
		w := f.do(http.MethodPost, "/api/companies", f.superAdmin.ID.Hex(), `{"name":"Acme"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp model.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("employee actor is forbidden", func(t *testing.T) {
		f := newCompanyFixture(t)
		w := f.do(http.MethodPost, "/api/companies", f.employee.ID.Hex(), `{"name":"Acme"}`)

		require.Equal(t, http.StatusForbidden, w.Code)
		var resp model.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, apperror.CodeForbidden, resp.Code)
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		f := newCompanyFixture(t)
		w := f.do(http.MethodPost, "/api/companies", f.superAdmin.ID.Hex(), `{}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp model.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, apperror.CodeValidation, resp.Code)
	})

	t.Run("missing actor header is rejected", func(t *testing.T) {
		f := newCompanyFixture(t)
		w := f.do(http.MethodPost, "/api/companies", "", `{"name":"Acme"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown actor is not found", func(t *testing.T) {
		f := newCompanyFixture(t)
		w := f.do(http.MethodPost, "/api/companies", primitive.NewObjectID().Hex(), `{"name":"Acme"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompanyHandler_Delete(t *testing.T) {
	t.Run("missing company is not found", func(t *testing.T) {
		f := newCompanyFixture(t)
		w := f.do(http.MethodDelete, "/api/companies/"+primitive.NewObjectID().Hex(), f.superAdmin.ID.Hex(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is a client error", func(t *testing.T) {
		f := newCompanyFixture(t)
		w := f.do(http.MethodDelete, "/api/companies/not-hex", f.superAdmin.ID.Hex(), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
