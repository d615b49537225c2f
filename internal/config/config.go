package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Quiz   QuizConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type GeminiConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	Timeout    time.Duration
	MaxRetries int `yaml:"max_retries"`
}

type QuizConfig struct {
	MinContextLength int `yaml:"min_context_length"`
	MaxKeywords      int `yaml:"max_keywords"`
	SummarySentences int `yaml:"summary_sentences"`
	MinQuestions     int `yaml:"min_questions"`
	MaxQuestions     int `yaml:"max_questions"`
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional as long as the environment provides the key
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Gemini: GeminiConfig{
			APIKey:     viper.GetString("gemini.api_key"),
			Model:      viper.GetString("gemini.model"),
			Timeout:    viper.GetDuration("gemini.timeout") * time.Second,
			MaxRetries: viper.GetInt("gemini.max_retries"),
		},
		Quiz: QuizConfig{
			MinContextLength: viper.GetInt("quiz.min_context_length"),
			MaxKeywords:      viper.GetInt("quiz.max_keywords"),
			SummarySentences: viper.GetInt("quiz.summary_sentences"),
			MinQuestions:     viper.GetInt("quiz.min_questions"),
			MaxQuestions:     viper.GetInt("quiz.max_questions"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit", 10*1024*1024)
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", 30)
	viper.SetDefault("gemini.max_retries", 2)
	viper.SetDefault("quiz.min_context_length", 300)
	viper.SetDefault("quiz.max_keywords", 8)
	viper.SetDefault("quiz.summary_sentences", 5)
	viper.SetDefault("quiz.min_questions", 1)
	viper.SetDefault("quiz.max_questions", 15)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
}

// Validate checks the startup invariants. A missing Gemini API key is fatal:
// the service cannot generate quizzes without it.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set (config key gemini.api_key)")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model must not be empty")
	}
	if c.Quiz.MinQuestions < 1 || c.Quiz.MaxQuestions < c.Quiz.MinQuestions {
		return fmt.Errorf("invalid question count bounds: min=%d max=%d", c.Quiz.MinQuestions, c.Quiz.MaxQuestions)
	}
	return nil
}
