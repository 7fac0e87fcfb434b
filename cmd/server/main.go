package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/handler"
	"github.com/taskflow/taskflow-api/internal/queue"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/router"
	queue_publisher "github.com/taskflow/taskflow-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Config{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// nil means redis is unreachable; cache and rate limiting turn into
	// pass-throughs and the API keeps serving.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tasks := repository.NewTaskRepo(db)
	statuses := repository.NewStatusRepo(db)

	var publish handler.ActivityPublisher
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		publish = queue_publisher.PublishTaskActivity
		go func() {
			if err := queue.StartActivityConsumer(); err != nil {
				log.Printf("activity consumer stopped: %v", err)
			}
		}()
	}

	authHandler := handler.NewAuthHandler(cfg, users)
	taskHandler := handler.NewTaskHandler(tasks, publish)
	statusHandler := handler.NewStatusHandler(statuses)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, cfg, rdb, authHandler, taskHandler, statusHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
