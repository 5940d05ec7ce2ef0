package app

import (
	"fmt"
	"log"

	"taskman/internal/config"
	"taskman/internal/db"
	"taskman/internal/handlers"
	"taskman/internal/pdf"
	"taskman/internal/repositories"
	"taskman/internal/routes"
	"taskman/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "taskman/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	if err := db.RunMigrations(conn, cfg); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(conn)
	statusRepo := repositories.NewStatusRepository(conn)
	labelRepo := repositories.NewLabelRepository(conn)
	taskRepo := repositories.NewTaskRepository(conn)

	// === Services ===
	authService := services.NewAuthService()
	emailService := newEmailService(cfg)
	userService := services.NewUserService(userRepo, taskRepo, authService, emailService)
	statusService := services.NewStatusService(statusRepo, taskRepo)
	labelService := services.NewLabelService(labelRepo, taskRepo)

	resolver := services.NewTaskResolver(statusRepo, userRepo, labelRepo, cfg.App.DefaultStatus)
	taskService := services.NewTaskService(taskRepo, resolver)

	tgService, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("[tg][init][err] %v (notifications disabled)", err)
	}

	pdfGen := pdf.NewReportGenerator()

	if err := Seed(cfg, userRepo, authService, statusRepo, labelRepo); err != nil {
		log.Fatal("failed to seed database: ", err)
	}

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, userRepo, cfg)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, tgService)
	statusHandler := handlers.NewStatusHandler(statusService)
	labelHandler := handlers.NewLabelHandler(labelService)
	reportHandler := handlers.NewReportHandler(taskService, pdfGen)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Register(router, routes.Handlers{
		Auth:   authHandler,
		User:   userHandler,
		Task:   taskHandler,
		Status: statusHandler,
		Label:  labelHandler,
		Report: reportHandler,
	}, cfg)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

// newEmailService returns nil when SMTP is not configured; user creation
// then skips the welcome email.
func newEmailService(cfg *config.Config) services.EmailService {
	if cfg.Email.SMTPHost == "" {
		return nil
	}
	return services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Total-Count")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
