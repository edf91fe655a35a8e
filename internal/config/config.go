package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress    string `json:"server_address"`
	BaseURL          string `json:"base_url"`
	RedisAddr        string `json:"redis_addr"`
	RedisPassword    string `json:"redis_password"`
	RedisDB          int    `json:"redis_db"`
	DatabaseDSN      string `json:"database_dsn"`
	PgMigrationsPath string `json:"pg_migrations_path"`
	EnableHTTPS      bool   `json:"enable_https"`
	TLSCertPath      string `json:"tls_cert_path"`
	TLSKeyPath       string `json:"tls_key_path"`
	Mode             string `json:"-"`

	// Политика сроков жизни ссылок. Смещения заданы здесь единожды,
	// чтобы обе записи пары всегда получали одинаковый TTL.
	BookingTTLOffset    time.Duration `json:"booking_ttl_offset"`
	DefaultLinkLifetime time.Duration `json:"default_link_lifetime"`
	TTLFloor            time.Duration `json:"ttl_floor"`

	SweepInterval time.Duration `json:"sweep_interval"`
	BannerDelay   time.Duration `json:"banner_delay"`
}

// NewConfig инициализирует конфигурацию на основе аргументов командной строки
func NewConfig() *Config {

	viper.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("PG_MIGRATIONS_PATH", "internal/migrations")
	viper.SetDefault("ENABLE_HTTPS", false)
	viper.SetDefault("TLS_CERT_PATH", "cert.pem")
	viper.SetDefault("TLS_KEY_PATH", "key.pem")
	viper.SetDefault("BOOKING_TTL_OFFSET", "720h")    // 30 дней после начала бронирования
	viper.SetDefault("DEFAULT_LINK_LIFETIME", "6480h") // 9 месяцев
	viper.SetDefault("TTL_FLOOR", "1h")
	viper.SetDefault("SWEEP_INTERVAL", "6h")
	viper.SetDefault("BANNER_DELAY", "1500ms")

	viper.AutomaticEnv()

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // Ошибку игнорируем, если файла нет

	// Определяем флаги, но НЕ задаем в них значения по умолчанию
	serverAddress := flag.String("a", "", "server address")
	baseURL := flag.String("b", "", "base URL")
	redisAddr := flag.String("r", "", "Redis address")
	databaseDSN := flag.String("d", "", "PostgreSQL DSN")
	enableHTTPS := flag.Bool("s", false, "enable HTTPS")
	tlsCertPath := flag.String("cert", "", "path to TLS certificate")
	tlsKeyPath := flag.String("key", "", "path to TLS key")
	configPath := flag.String("c", "", "path to JSON config file")
	flag.StringVar(configPath, "config", "", "path to JSON config file")

	flag.Parse()

	// Загружаем JSON-конфигурацию (если указана)
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG")
	}

	type rawJSON Config
	jsonCfg := &rawJSON{}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Printf("Не удалось прочитать JSON-файл конфигурации %q: %v", *configPath, err)
		} else if err := json.Unmarshal(data, jsonCfg); err != nil {
			log.Printf("Ошибка разбора JSON-файла конфигурации: %v", err)
		}
	}

	cfg := &Config{
		ServerAddress:       viper.GetString("SERVER_ADDRESS"),
		BaseURL:             viper.GetString("BASE_URL"),
		RedisAddr:           viper.GetString("REDIS_ADDR"),
		RedisPassword:       viper.GetString("REDIS_PASSWORD"),
		RedisDB:             viper.GetInt("REDIS_DB"),
		DatabaseDSN:         viper.GetString("DATABASE_DSN"),
		PgMigrationsPath:    viper.GetString("PG_MIGRATIONS_PATH"),
		EnableHTTPS:         viper.GetBool("ENABLE_HTTPS"),
		TLSCertPath:         viper.GetString("TLS_CERT_PATH"),
		TLSKeyPath:          viper.GetString("TLS_KEY_PATH"),
		BookingTTLOffset:    viper.GetDuration("BOOKING_TTL_OFFSET"),
		DefaultLinkLifetime: viper.GetDuration("DEFAULT_LINK_LIFETIME"),
		TTLFloor:            viper.GetDuration("TTL_FLOOR"),
		SweepInterval:       viper.GetDuration("SWEEP_INTERVAL"),
		BannerDelay:         viper.GetDuration("BANNER_DELAY"),
	}

	// Значения из JSON-файла применяются только там, где окружение молчит
	applyJSON := func(env string, jsonVal string, target *string) {
		if os.Getenv(env) == "" && jsonVal != "" {
			*target = jsonVal
		}
	}
	applyJSON("SERVER_ADDRESS", jsonCfg.ServerAddress, &cfg.ServerAddress)
	applyJSON("BASE_URL", jsonCfg.BaseURL, &cfg.BaseURL)
	applyJSON("REDIS_ADDR", jsonCfg.RedisAddr, &cfg.RedisAddr)
	applyJSON("DATABASE_DSN", jsonCfg.DatabaseDSN, &cfg.DatabaseDSN)
	applyJSON("PG_MIGRATIONS_PATH", jsonCfg.PgMigrationsPath, &cfg.PgMigrationsPath)
	applyJSON("TLS_CERT_PATH", jsonCfg.TLSCertPath, &cfg.TLSCertPath)
	applyJSON("TLS_KEY_PATH", jsonCfg.TLSKeyPath, &cfg.TLSKeyPath)

	// Если флаг передан, но переменной окружения нет — используем флаг
	if *serverAddress != "" {
		cfg.ServerAddress = *serverAddress
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *redisAddr != "" {
		cfg.RedisAddr = *redisAddr
	}
	if *databaseDSN != "" {
		cfg.DatabaseDSN = *databaseDSN
	}

	// Определяем режим работы
	if cfg.DatabaseDSN != "" {
		cfg.Mode = "database"
	} else {
		cfg.Mode = "cache-only"
	}

	// Включаем TLS
	if *enableHTTPS {
		cfg.EnableHTTPS = true
	}
	if *tlsCertPath != "" {
		cfg.TLSCertPath = *tlsCertPath
	}
	if *tlsKeyPath != "" {
		cfg.TLSKeyPath = *tlsKeyPath
	}

	log.Printf("Инициализация конфигурации: ServerAddress=%s", cfg.ServerAddress)
	log.Printf("Инициализация конфигурации: BaseURL=%s", cfg.BaseURL)
	log.Printf("Инициализация конфигурации: RedisAddr=%s", cfg.RedisAddr)
	log.Printf("Инициализация конфигурации: Mode=%s", cfg.Mode)
	log.Printf("Инициализация конфигурации: SweepInterval=%s", cfg.SweepInterval)

	// Проверка корректности конфигурации
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Ошибка конфигурации: %v\n", err)
	}

	return cfg
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("базовый URL не может быть пустым")
	}
	if cfg.RedisAddr == "" {
		return fmt.Errorf("адрес Redis не может быть пустым")
	}
	if cfg.BookingTTLOffset <= 0 || cfg.DefaultLinkLifetime <= 0 || cfg.TTLFloor <= 0 {
		return fmt.Errorf("сроки жизни ссылок должны быть положительными")
	}
	return nil
}
