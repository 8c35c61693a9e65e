package meetings

import (
	"time"

	"github.com/hibiken/asynq"
)

// ServerConfig параметры подключения воркера к Redis
type ServerConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	ShutdownTimeout time.Duration
}

// RedisOpt возвращает параметры подключения asynq к Redis
func (c ServerConfig) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// Server фоновый воркер очереди встреч
type Server struct {
	srv     *asynq.Server
	handler *Handler
}

// NewServer создает воркер с обработчиком задач встреч
func NewServer(cfg ServerConfig, handler *Handler) *Server {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	srv := asynq.NewServer(cfg.RedisOpt(), asynq.Config{
		Concurrency:     concurrency,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Queues:          map[string]int{"default": 1},
	})

	return &Server{srv: srv, handler: handler}
}

// Start запускает обработку задач в фоне
func (s *Server) Start() error {
	mux := asynq.NewServeMux()
	s.handler.Register(mux)
	return s.srv.Start(mux)
}

// Shutdown дожидается активных задач и останавливает воркер
func (s *Server) Shutdown() {
	s.srv.Shutdown()
}
