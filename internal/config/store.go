package config

import "time"

type StoreBackend string

const (
	StoreBackendMemory StoreBackend = "memory"
	StoreBackendRedis  StoreBackend = "redis"
)

type Store struct {
	Backend    StoreBackend  `env:"STORE_BACKEND" envDefault:"memory"`
	SessionTTL time.Duration `env:"STORE_SESSION_TTL" envDefault:"24h"`
}

type Redis struct {
	Address            string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	Username           string `env:"REDIS_USERNAME"`
	Password           string `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConnections int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int    `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
}

// Dashboard holds the view defaults used when a query leaves a parameter out.
type Dashboard struct {
	MinDeals        int    `env:"DASHBOARD_MIN_DEALS" envDefault:"5"`
	WindowDays      int    `env:"DASHBOARD_WINDOW_DAYS" envDefault:"30"`
	LimitPoints     int    `env:"DASHBOARD_LIMIT_POINTS" envDefault:"90"`
	WeeklyThreshold int    `env:"DASHBOARD_WEEKLY_THRESHOLD" envDefault:"20"`
	RollingMode     string `env:"DASHBOARD_ROLLING_MODE" envDefault:"always-defined"`
}
