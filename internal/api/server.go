package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hanifz/kantin-api/docs"
	v1 "github.com/hanifz/kantin-api/internal/api/handler/v1"
	"github.com/hanifz/kantin-api/internal/api/middleware"
	"github.com/hanifz/kantin-api/internal/config"
	"github.com/hanifz/kantin-api/internal/repository"
	"github.com/hanifz/kantin-api/internal/repository/dao"
	"github.com/hanifz/kantin-api/internal/service"
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
	studentHandler := s.initStudentHandler(db)
	staffHandler := s.initStaffHandler(db)
	stallHandler := s.initStallHandler(db)
	menuHandler := s.initMenuHandler(db)
	discountHandler := s.initDiscountHandler(db)
	orderHandler := s.initOrderHandler(db)
	s.MountHandlers(authHandler, studentHandler, staffHandler, stallHandler, menuHandler, discountHandler, orderHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	svc := service.NewAuthService(userRepo, stallRepo)
	handler := v1.NewAuthHandler(s.Config.API, svc, s.Config.API.UploadDir)

	return handler
}

func (s *Server) initStudentHandler(db *gorm.DB) *v1.StudentHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)
	handler := v1.NewStudentHandler(svc, s.Config.API.UploadDir)

	return handler
}

func (s *Server) initStaffHandler(db *gorm.DB) *v1.StaffHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)
	handler := v1.NewStaffHandler(svc, s.Config.API.UploadDir)

	return handler
}

func (s *Server) initStallHandler(db *gorm.DB) *v1.StallHandler {
	repo := repository.NewStallRepository(dao.NewStallDAO(db))
	svc := service.NewStallService(repo)
	handler := v1.NewStallHandler(svc)

	return handler
}

func (s *Server) initMenuHandler(db *gorm.DB) *v1.MenuHandler {
	repo := repository.NewMenuRepository(dao.NewMenuDAO(db))
	svc := service.NewMenuService(repo)
	handler := v1.NewMenuHandler(svc, s.Config.API.UploadDir)

	return handler
}

func (s *Server) initDiscountHandler(db *gorm.DB) *v1.DiscountHandler {
	repo := repository.NewDiscountRepository(dao.NewDiscountDAO(db))
	svc := service.NewDiscountService(repo)
	handler := v1.NewDiscountHandler(svc)

	return handler
}

func (s *Server) initOrderHandler(db *gorm.DB) *v1.OrderHandler {
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	menuRepo := repository.NewMenuRepository(dao.NewMenuDAO(db))
	discountRepo := repository.NewDiscountRepository(dao.NewDiscountDAO(db))
	svc := service.NewOrderService(orderRepo, menuRepo, discountRepo)
	receipts := service.NewReceiptService(orderRepo)
	handler := v1.NewOrderHandler(svc, receipts)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	studentHandler *v1.StudentHandler,
	staffHandler *v1.StaffHandler,
	stallHandler *v1.StallHandler,
	menuHandler *v1.MenuHandler,
	discountHandler *v1.DiscountHandler,
	orderHandler *v1.OrderHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/student/signup", authHandler.HandleStudentSignup)
		auth.POST("/auth/student/login", authHandler.HandleStudentLogin)
		auth.POST("/auth/staff/login", authHandler.HandleStaffLogin)
		auth.POST("/auth/staff/signup", verifyJWT, middleware.RequireRoles("admin"), authHandler.HandleStaffSignup)
	}

	students := s.Router.Group(basePath, verifyJWT)
	{
		students.GET("/students", middleware.RequireRoles("admin"), studentHandler.HandleListStudents)
		students.GET("/students/:studentID", middleware.RequireRoles("admin"), studentHandler.HandleGetStudent)
		students.PUT("/students/:studentID", middleware.RequireRoles("admin", "student"), studentHandler.HandleUpdateStudent)
		students.DELETE("/students/:studentID", middleware.RequireRoles("admin"), studentHandler.HandleDeleteStudent)
	}

	staff := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles("admin", "staff"))
	{
		staff.GET("/staff", middleware.RequireRoles("admin"), staffHandler.HandleListStaff)
		staff.PUT("/staff/:staffID", staffHandler.HandleUpdateStaff)
		staff.DELETE("/staff/:staffID", middleware.RequireRoles("admin"), staffHandler.HandleDeleteStaff)
	}

	stalls := s.Router.Group(basePath, verifyJWT)
	{
		stalls.GET("/stalls", stallHandler.HandleListStalls)
		stalls.POST("/stalls", middleware.RequireRoles("admin"), stallHandler.HandleCreateStall)
		stalls.PUT("/stalls/:stallID", middleware.RequireRoles("admin"), stallHandler.HandleUpdateStall)
		stalls.DELETE("/stalls/:stallID", middleware.RequireRoles("admin"), stallHandler.HandleDeleteStall)
	}

	// The catalog listings are public so the menu board can be browsed
	// before logging in. Everything that mutates stays behind auth.
	s.Router.GET(basePath+"/menus", menuHandler.HandleListMenus)
	s.Router.GET(basePath+"/discounts/active", discountHandler.HandleListActiveDiscounts)

	menus := s.Router.Group(basePath, verifyJWT)
	{
		menus.POST("/menus", middleware.RequireRoles("admin", "staff"), menuHandler.HandleCreateMenu)
		menus.PUT("/menus/:menuID", middleware.RequireRoles("admin", "staff"), menuHandler.HandleUpdateMenu)
		menus.DELETE("/menus/:menuID", middleware.RequireRoles("admin", "staff"), menuHandler.HandleDeleteMenu)
	}

	discounts := s.Router.Group(basePath, verifyJWT)
	{
		discounts.POST("/discounts", middleware.RequireRoles("admin", "staff"), discountHandler.HandleCreateDiscount)
		discounts.PUT("/discounts/:discountID", middleware.RequireRoles("admin", "staff"), discountHandler.HandleUpdateDiscount)
		discounts.DELETE("/discounts/:discountID", middleware.RequireRoles("admin", "staff"), discountHandler.HandleDeleteDiscount)
		discounts.POST("/discounts/:discountID/menus", middleware.RequireRoles("admin", "staff"), discountHandler.HandleAssignMenus)
		discounts.DELETE("/discounts/:discountID/menus/:menuID", middleware.RequireRoles("admin", "staff"), discountHandler.HandleUnassignMenu)
	}

	orders := s.Router.Group(basePath, verifyJWT)
	{
		orders.POST("/orders", middleware.RequireRoles("student"), orderHandler.HandleCheckout)
		orders.GET("/orders/history", middleware.RequireRoles("student"), orderHandler.HandleStudentHistory)
		orders.GET("/orders/stall-history", middleware.RequireRoles("admin", "staff"), orderHandler.HandleStallHistory)
		orders.GET("/orders/:orderID", orderHandler.HandleGetOrder)
		orders.PUT("/orders/:orderID", middleware.RequireRoles("student"), orderHandler.HandleEditOrder)
		orders.DELETE("/orders/:orderID", middleware.RequireRoles("student"), orderHandler.HandleCancelOrder)
		orders.PATCH("/orders/:orderID/status", middleware.RequireRoles("admin", "staff"), orderHandler.HandleUpdateOrderStatus)
		orders.GET("/orders/:orderID/receipt", orderHandler.HandleDownloadReceipt)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.Static("/uploads", s.Config.API.UploadDir)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "School Canteen Ordering API"
	docs.SwaggerInfo.Description = "REST API for stalls, menus, discounts and student orders."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
