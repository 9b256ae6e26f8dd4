package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		StaticDir string `yaml:"staticDir"`
	} `yaml:"server"`

	AI struct {
		Provider       string `yaml:"provider"` // gemini | openai
		APIKey         string `yaml:"apiKey"`
		Model          string `yaml:"model"`
		FallbackModel  string `yaml:"fallbackModel"`
		MaxQuestions   int    `yaml:"maxQuestions"`
		TextLimit      int    `yaml:"textLimit"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"ai"`

	Upload struct {
		MaxBytes int64 `yaml:"maxBytes"`
	} `yaml:"upload"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	// Keys maps client name -> API key. Empty map disables auth.
	Auth struct {
		Keys map[string]string `yaml:"keys"`
	} `yaml:"auth"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load reads config.yaml, applies environment overrides for secrets and
// fills defaults. A missing file is not an error: the service can run on
// defaults plus environment alone. The returned Config is treated as
// immutable for the process lifetime.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Secrets are taken from the environment when set; checked once here,
	// never deeper in the call graph.
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.AI.APIKey == "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("AI_FALLBACK_MODEL"); v != "" {
		cfg.AI.FallbackModel = v
	}
	if v := os.Getenv("LLM_MAX_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AI.MaxQuestions = n
		}
	}
	if v := os.Getenv("LLM_TEXT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AI.TextLimit = n
		}
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.Minio.SecretKey = v
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "static"
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.AI.FallbackModel == "" {
		c.AI.FallbackModel = "gemini-2.0-flash"
	}
	if c.AI.MaxQuestions == 0 {
		c.AI.MaxQuestions = 200
	}
	if c.AI.TextLimit == 0 {
		c.AI.TextLimit = 12000
	}
	if c.AI.TimeoutSeconds == 0 {
		c.AI.TimeoutSeconds = 60
	}
	if c.Upload.MaxBytes == 0 {
		c.Upload.MaxBytes = 32 << 20
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 10
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 1
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.Port == 0 {
		if c.Database.Driver == "postgres" {
			c.Database.Port = 5432
		} else {
			c.Database.Port = 3306
		}
	}
}

// MySQLDSN builds the DSN for go-sql-driver/mysql
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for lib/pq
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
