package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/rdfzsc/campus-api/docs"
	v1 "github.com/rdfzsc/campus-api/internal/api/handler/v1"
	"github.com/rdfzsc/campus-api/internal/api/middleware"
	"github.com/rdfzsc/campus-api/internal/config"
	"github.com/rdfzsc/campus-api/internal/repository"
	"github.com/rdfzsc/campus-api/internal/repository/dao"
	"github.com/rdfzsc/campus-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	activityHandler := s.initActivityHandler(db)
	s.MountHandlers(authHandler, userHandler, activityHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	uSvc := service.NewUserService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc, uSvc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	uSvc := service.NewUserService(userRepo)
	pointsRepo := repository.NewPointsRepository(dao.NewPointsDAO(db))
	pSvc := service.NewPointsService(pointsRepo, userRepo)
	handler := v1.NewUserHandler(s.Config, uSvc, pSvc)

	return handler
}

func (s *Server) initActivityHandler(db *gorm.DB) *v1.ActivityHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db), userRepo)
	participationRepo := repository.NewParticipationRepository(dao.NewParticipationDAO(db), userRepo, activityRepo)

	aSvc := service.NewActivityService(activityRepo)
	pSvc := service.NewParticipationService(participationRepo, activityRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewActivityHandler(s.Config, aSvc, pSvc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, activityHandler *v1.ActivityHandler) {
	const basePath = "/api"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/register", authHandler.HandleRegister)
		public.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/auth/me", authHandler.HandleGetMe)
		authenticated.POST("/auth/changepassword", authHandler.HandleChangePassword)

		authenticated.GET("/users", userHandler.HandleListUsers)
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)
		authenticated.PUT("/users/:userID", userHandler.HandleUpdateUser)
		authenticated.DELETE("/users/:userID", userHandler.HandleDeleteUser)
		authenticated.GET("/users/:userID/activities", activityHandler.HandleGetUserActivities)
		authenticated.POST("/users/:userID/points/add", userHandler.HandleAddPoints)
		authenticated.GET("/users/:userID/points/record", userHandler.HandleGetPointRecords)

		authenticated.GET("/activities", activityHandler.HandleListActivities)
		authenticated.POST("/activities", activityHandler.HandleCreateActivity)
		authenticated.GET("/activities/categories/all", activityHandler.HandleListCategories)
		authenticated.POST("/activities/categories/new", activityHandler.HandleCreateCategory)
		authenticated.GET("/activities/:activityID", activityHandler.HandleGetActivity)
		authenticated.PUT("/activities/:activityID", activityHandler.HandleUpdateActivity)
		authenticated.DELETE("/activities/:activityID", activityHandler.HandleDeleteActivity)
		authenticated.POST("/activities/:activityID/join", activityHandler.HandleJoinActivity)
		authenticated.POST("/activities/:activityID/leave", activityHandler.HandleLeaveActivity)
		authenticated.GET("/activities/:activityID/participants", activityHandler.HandleListParticipants)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Campus API"
	docs.SwaggerInfo.Description = "School club backend: accounts, activities, participation and points."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
