package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/careershub/careers_api/internal/application"
	"github.com/careershub/careers_api/internal/company"
	"github.com/careershub/careers_api/internal/config"
	"github.com/careershub/careers_api/internal/job"
	"github.com/careershub/careers_api/internal/mail"
	"github.com/careershub/careers_api/internal/middleware"
	"github.com/careershub/careers_api/internal/otp"
	"github.com/careershub/careers_api/internal/savedjob"
	"github.com/careershub/careers_api/internal/token"
	"github.com/careershub/careers_api/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories: Postgres when available, in-memory in dev mode.
	var (
		userRepo        user.Repository
		companyRepo     company.Repository
		jobRepo         job.Repository
		applicationRepo application.Repository
		savedJobRepo    savedjob.Repository
	)
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		companyRepo = company.NewPostgresRepository(d.DB)
		jobRepo = job.NewPostgresRepository(d.DB)
		applicationRepo = application.NewPostgresRepository(d.DB)
		savedJobRepo = savedjob.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		companyRepo = company.NewMemoryRepository()
		jobRepo = job.NewMemoryRepository()
		applicationRepo = application.NewMemoryRepository()
		savedJobRepo = savedjob.NewMemoryRepository()
	}

	var mailer mail.Mailer
	if d.Cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(d.Cfg.SMTPHost, d.Cfg.SMTPPort, d.Cfg.SMTPUsername, d.Cfg.SMTPPassword, d.Cfg.MailFrom)
	} else {
		mailer = mail.NewLogMailer(d.Logger)
	}

	// One OTP store serves both account types; records are keyed by account id.
	var otpStore otp.Store
	if d.Cache != nil {
		otpStore = otp.NewRedisStore(d.Cache)
	} else {
		otpStore = otp.NewMemoryStore()
	}
	userOTP := otp.NewManager(otpStore, userRepo, mailer, d.Cfg.OTPTTL, d.Logger)
	companyOTP := otp.NewManager(otpStore, companyRepo, mailer, d.Cfg.OTPTTL, d.Logger)

	issuer := token.NewIssuer([]byte(d.Cfg.JWTSecret), d.Cfg.TokenTTL)

	userSvc := user.NewService(userRepo)
	companySvc := company.NewService(companyRepo)
	jobSvc := job.NewService(jobRepo)
	applicationSvc := application.NewService(applicationRepo, jobRepo, userRepo, mailer, d.Logger)
	savedJobSvc := savedjob.NewService(savedJobRepo, jobRepo, d.Logger)

	userHandler := user.NewHandler(userSvc, issuer)
	companyHandler := company.NewHandler(companySvc, issuer)
	jobHandler := job.NewHandler(jobSvc)
	applicationHandler := application.NewHandler(applicationSvc)
	savedJobHandler := savedjob.NewHandler(savedJobSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals(middleware.RequestIDKey).(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	authRequired := middleware.RequireAuth(issuer)
	otpLimit := middleware.OTPRateLimit(d.Cache, 3)

	RegisterUserRoutes(api, userHandler, otp.NewHandler(userOTP), authRequired, otpLimit)
	RegisterCompanyRoutes(api, companyHandler, otp.NewHandler(companyOTP), authRequired, otpLimit)
	RegisterJobRoutes(api, jobHandler, authRequired)
	RegisterApplicationRoutes(api, applicationHandler, authRequired)
	RegisterSavedJobRoutes(api, savedJobHandler, authRequired)

	return nil
}
