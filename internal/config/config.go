package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Teams     TeamsConfig     `toml:"teams"`
	Queue     QueueConfig     `toml:"queue"`
	Cache     CacheConfig     `toml:"cache"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// SchedulerConfig политика расписания в том виде, в котором она записана в файле
type SchedulerConfig struct {
	BusinessStart        string   `toml:"business_start"`
	BusinessEnd          string   `toml:"business_end"`
	LunchStart           string   `toml:"lunch_start"`
	LunchEnd             string   `toml:"lunch_end"`
	SlotIntervalMinutes  int      `toml:"slot_interval_minutes"`
	PaddingMinutes       int      `toml:"padding_minutes"`
	MaxBookingDaysAhead  int      `toml:"max_booking_days_ahead"`
	MinBookingHoursAhead int      `toml:"min_booking_hours_ahead"`
	ExcludeWeekends      bool     `toml:"exclude_weekends"`
	ExcludedDates        []string `toml:"excluded_dates"`
	AvailableDurations   []int    `toml:"available_durations"`
	DefaultDuration      int      `toml:"default_duration"`
	TimeZone             string   `toml:"time_zone"`
	StoreTimeoutSeconds  int      `toml:"store_timeout_seconds"`
}

type TeamsConfig struct {
	Enabled              bool   `toml:"enabled"`
	TenantID             string `toml:"tenant_id"`
	ClientID             string `toml:"client_id"`
	ClientSecret         string `toml:"client_secret"`
	OrganizerEmail       string `toml:"organizer_email"`
	GraphBaseURL         string `toml:"graph_base_url"`
	TokenURL             string `toml:"token_url"` // пусто = login.microsoftonline.com для tenant_id
	TimeoutSeconds       int    `toml:"timeout_seconds"`
	CalendarAvailability bool   `toml:"calendar_availability"`
}

type QueueConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
	MaxRetry      int    `toml:"max_retry"`
}

type CacheConfig struct {
	Size       int `toml:"size"`
	TTLSeconds int `toml:"ttl_seconds"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
// Load декодирует файл поверх неё, поэтому отсутствующие ключи сохраняют дефолты.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "teams-scheduler",
			Path:        "/metrics",
		},
		Scheduler: SchedulerConfig{
			BusinessStart:        "09:00",
			BusinessEnd:          "17:00",
			LunchStart:           "12:00",
			LunchEnd:             "13:00",
			SlotIntervalMinutes:  domain.DefaultSlotIntervalMinutes,
			PaddingMinutes:       domain.DefaultPaddingMinutes,
			MaxBookingDaysAhead:  domain.DefaultMaxBookingDaysAhead,
			MinBookingHoursAhead: domain.DefaultMinBookingHoursAhead,
			ExcludeWeekends:      true,
			AvailableDurations:   append([]int(nil), domain.DefaultAvailableDurations...),
			DefaultDuration:      domain.DefaultDurationMinutes,
			TimeZone:             domain.DefaultTimeZone,
			StoreTimeoutSeconds:  5,
		},
		Teams: TeamsConfig{
			GraphBaseURL:   "https://graph.microsoft.com/v1.0",
			TimeoutSeconds: 10,
		},
		Queue: QueueConfig{
			RedisAddr:   "localhost:6379",
			Concurrency: 5,
			MaxRetry:    5,
		},
		Cache: CacheConfig{
			Size:       256,
			TTLSeconds: 30,
		},
	}
}

// Load читает .env (если есть), TOML файл и переменные окружения с секретами
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"DB_HOST":             &c.Database.Host,
		"DB_USER":             &c.Database.User,
		"DB_PASSWORD":         &c.Database.Password,
		"DB_NAME":             &c.Database.DBName,
		"TEAMS_TENANT_ID":     &c.Teams.TenantID,
		"TEAMS_CLIENT_ID":     &c.Teams.ClientID,
		"TEAMS_CLIENT_SECRET": &c.Teams.ClientSecret,
		"TEAMS_ORGANIZER":     &c.Teams.OrganizerEmail,
		"REDIS_ADDR":          &c.Queue.RedisAddr,
		"REDIS_PASSWORD":      &c.Queue.RedisPassword,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT %q is not a valid integer", ErrInvalidConfig, v)
		}
		c.Database.Port = port
	}

	return nil
}

// Validate проверяет все секции и собирает все найденные проблемы
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if c.Scheduler.StoreTimeoutSeconds <= 0 {
		problems = append(problems, "scheduler.store_timeout_seconds must be positive")
	}
	if c.Cache.Size <= 0 {
		problems = append(problems, "cache.size must be positive")
	}
	if c.Teams.Enabled {
		if c.Teams.TenantID == "" || c.Teams.ClientID == "" || c.Teams.ClientSecret == "" {
			problems = append(problems, "teams.tenant_id, teams.client_id and teams.client_secret are required when teams is enabled")
		}
		if c.Teams.OrganizerEmail == "" {
			problems = append(problems, "teams.organizer_email is required when teams is enabled")
		}
	}
	if c.Queue.Enabled && c.Queue.RedisAddr == "" {
		problems = append(problems, "queue.redis_addr is required when queue is enabled")
	}

	if _, err := c.Scheduler.build(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// SchedulerConfig возвращает доменную политику расписания
func (c *Config) SchedulerConfig() (domain.SchedulerConfig, error) {
	sc, err := c.Scheduler.build()
	if err != nil {
		return domain.SchedulerConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return sc, nil
}

// StoreTimeout таймаут одного обращения к хранилищу бронирований
func (c *Config) StoreTimeout() time.Duration {
	return time.Duration(c.Scheduler.StoreTimeoutSeconds) * time.Second
}

func (s SchedulerConfig) build() (domain.SchedulerConfig, error) {
	var problems []string

	start, errStart := types.NewTimeStringFromString(s.BusinessStart)
	end, errEnd := types.NewTimeStringFromString(s.BusinessEnd)
	switch {
	case errStart != nil || errEnd != nil:
		problems = append(problems, "scheduler.business_start/business_end must be HH:MM")
	case !start.IsBefore(end):
		problems = append(problems, "scheduler.business_start must be before business_end")
	}

	var lunch *domain.TimeRange
	if s.LunchStart != "" || s.LunchEnd != "" {
		ls, errLS := types.NewTimeStringFromString(s.LunchStart)
		le, errLE := types.NewTimeStringFromString(s.LunchEnd)
		switch {
		case errLS != nil || errLE != nil:
			problems = append(problems, "scheduler.lunch_start/lunch_end must be HH:MM")
		case !ls.IsBefore(le):
			problems = append(problems, "scheduler.lunch_start must be before lunch_end")
		default:
			lunch = &domain.TimeRange{Start: ls, End: le}
		}
	}

	if s.SlotIntervalMinutes <= 0 {
		problems = append(problems, "scheduler.slot_interval_minutes must be positive")
	}
	if s.PaddingMinutes < 0 {
		problems = append(problems, "scheduler.padding_minutes must not be negative")
	}
	if s.MaxBookingDaysAhead < 0 {
		problems = append(problems, "scheduler.max_booking_days_ahead must not be negative")
	}
	if s.MinBookingHoursAhead < 0 {
		problems = append(problems, "scheduler.min_booking_hours_ahead must not be negative")
	}

	if len(s.AvailableDurations) == 0 {
		problems = append(problems, "scheduler.available_durations must not be empty")
	}
	durationAllowed := false
	for _, d := range s.AvailableDurations {
		if d <= 0 {
			problems = append(problems, fmt.Sprintf("scheduler.available_durations contains non-positive value %d", d))
		}
		if d == s.DefaultDuration {
			durationAllowed = true
		}
	}
	if len(s.AvailableDurations) > 0 && !durationAllowed {
		problems = append(problems, fmt.Sprintf("scheduler.default_duration %d is not in available_durations", s.DefaultDuration))
	}

	excluded := make(map[string]struct{}, len(s.ExcludedDates))
	for _, raw := range s.ExcludedDates {
		d, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("scheduler.excluded_dates: %q is not YYYY-MM-DD", raw))
			continue
		}
		excluded[d.Format(domain.DateFormat)] = struct{}{}
	}

	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("scheduler.time_zone %q: %v", s.TimeZone, err))
	}

	if len(problems) > 0 {
		return domain.SchedulerConfig{}, errors.New(strings.Join(problems, "; "))
	}

	return domain.SchedulerConfig{
		BusinessHours:        domain.TimeRange{Start: start, End: end},
		LunchBreak:           lunch,
		SlotIntervalMinutes:  s.SlotIntervalMinutes,
		PaddingMinutes:       s.PaddingMinutes,
		MaxBookingDaysAhead:  s.MaxBookingDaysAhead,
		MinBookingHoursAhead: s.MinBookingHoursAhead,
		ExcludeWeekends:      s.ExcludeWeekends,
		ExcludedDates:        excluded,
		AvailableDurations:   append([]int(nil), s.AvailableDurations...),
		DefaultDuration:      s.DefaultDuration,
		TimeZone:             s.TimeZone,
		Location:             loc,
	}, nil
}
