package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress    = "localhost:8080"
	defaultOracleURL     = "https://api.xposedornot.com"
	defaultOracleTimeout = 10 * time.Second
)

type Config struct {
	Env    string
	DB     db
	Server server
	Logger logger
	Auth   auth
	Oracle oracle
	Crypto cryptoCfg
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type auth struct {
	Secret string `env:"AUTH_SECRET"`
}

type oracle struct {
	URL     string        `env:"ORACLE_URL"`
	Timeout time.Duration `env:"ORACLE_TIMEOUT"`
}

type cryptoCfg struct {
	MasterPassphrase string `env:"MASTER_PASSPHRASE"`
	MasterSalt       string `env:"MASTER_SALT"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("oracle_url", defaultOracleURL)
	viper.SetDefault("oracle_timeout", defaultOracleTimeout)

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Logger: logger{LogLevel: viper.GetString("log_level")},
		Auth:   auth{Secret: viper.GetString("auth_secret")},
		Oracle: oracle{
			URL:     viper.GetString("oracle_url"),
			Timeout: viper.GetDuration("oracle_timeout"),
		},
		Crypto: cryptoCfg{
			MasterPassphrase: viper.GetString("master_passphrase"),
			MasterSalt:       viper.GetString("master_salt"),
		},
	}

	return &config
}
