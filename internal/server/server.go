package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"collabhub/internal/apperror"
	"collabhub/internal/authz"
	"collabhub/internal/broadcast"
	"collabhub/internal/config"
	"collabhub/internal/handler"
	"collabhub/internal/middleware"
	"collabhub/internal/repository"
	"collabhub/internal/service"
	"collabhub/internal/version"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	mongo    *mongo.Client
	logger   *zap.Logger
	services *Services
}

// Repositories groups the store adapters
type Repositories struct {
	Companies repository.ICompanyRepository
	Users     repository.IUserRepository
	Projects  repository.IProjectRepository
}

// Services groups the business logic layer
type Services struct {
	Companies *service.CompanyService
	Users     *service.UserService
	Projects  *service.ProjectService
}

// Handlers groups the HTTP layer
type Handlers struct {
	Company       *handler.CompanyHandler
	User          *handler.UserHandler
	Project       *handler.ProjectHandler
	CommentStream *handler.CommentStreamHandler
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	apperror.Init()

	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	policy, err := authz.NewPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to build authorization policy: %w", err)
	}

	registry := broadcast.NewRegistry(logger)
	repos := InitRepositories(db)
	services := InitServices(cfg, repos, policy, registry, logger)
	handlers := InitHandlers(services, registry, logger)

	if err := PopulateInitialData(repos, services, logger); err != nil {
		return nil, fmt.Errorf("failed to populate initial data: %w", err)
	}

	router := setupRouter(handlers, services)

	return &Server{
		cfg:      cfg,
		router:   router,
		mongo:    mongoClient,
		logger:   logger,
		services: services,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// InitRepositories wires the mongo adapters
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Companies: repository.NewCompanyRepository(db),
		Users:     repository.NewUserRepository(db),
		Projects:  repository.NewProjectRepository(db),
	}
}

// InitServices wires the business logic layer
func InitServices(cfg *config.Config, repos *Repositories, policy *authz.Policy, registry *broadcast.Registry, logger *zap.Logger) *Services {
	return &Services{
		Companies: service.NewCompanyService(repos.Companies, policy),
		Users:     service.NewUserService(repos.Users, policy, cfg, logger),
		Projects:  service.NewProjectService(repos.Projects, registry, policy, logger),
	}
}

// InitHandlers wires the HTTP layer
func InitHandlers(services *Services, registry *broadcast.Registry, logger *zap.Logger) *Handlers {
	return &Handlers{
		Company:       handler.NewCompanyHandler(services.Companies, logger),
		User:          handler.NewUserHandler(services.Users, logger),
		Project:       handler.NewProjectHandler(services.Projects, logger),
		CommentStream: handler.NewCommentStreamHandler(registry, logger),
	}
}

// PopulateInitialData creates store indexes and provisions the super admin.
// Provisioning is idempotent, so restarts are safe.
func PopulateInitialData(repos *Repositories, services *Services, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repos.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure user indexes: %w", err)
	}

	admin, created, err := services.Users.ProvisionSuperAdmin(ctx)
	if err != nil {
		return err
	}
	if !created {
		logger.Info("super admin already present", zap.String("user_id", admin.ID.Hex()))
	}
	return nil
}

// Close disconnects MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	s.logger.Info("server listening",
		zap.String("address", s.cfg.Server.Address()),
		zap.String("version", version.Version),
	)
	return s.router.Run(s.cfg.Server.Address())
}

func setupRouter(h *Handlers, s *Services) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": version.Get()})
	})

	api := r.Group("/api")

	// Provisioning needs no actor; it bootstraps the first one.
	api.POST("/provision", h.User.Provision)

	// Ungated reads and the documented unrestricted mutations.
	api.GET("/companies/:id", h.Company.Get)
	api.GET("/employees/:id", h.User.Get)
	api.PATCH("/employees/:id", h.User.UpdateEmployee)
	api.GET("/projects/:id", h.Project.Get)
	api.PATCH("/projects/:id", h.Project.Update)
	api.DELETE("/projects/:id", h.Project.Delete)
	api.POST("/projects/:id/comments", h.Project.AddComment)

	// Mutations gated by the role policy resolve the actor first.
	acted := api.Group("")
	acted.Use(middleware.RequireActor(s.Users))
	{
		acted.POST("/companies", h.Company.Create)
		acted.DELETE("/companies/:id", h.Company.Delete)
		acted.POST("/company-admins", h.User.CreateCompanyAdmin)
		acted.POST("/employees", h.User.CreateEmployee)
		acted.DELETE("/employees/:id", h.User.DeleteEmployee)
		acted.POST("/projects", h.Project.Create)
	}

	// Live observation channel, one project per connection.
	ws := r.Group("/ws")
	ws.GET("/comments/:id", h.CommentStream.Stream)

	return r
}
