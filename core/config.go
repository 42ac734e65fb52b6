package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

// Conf is the process-wide Config set by NewConfig.
var Conf *Config

type (
	ServerConfig struct {
		Host                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		Repos         string // sqlboiler | sqlx
	}

	// ClientConfig configures portal-side access to the API.
	ClientConfig struct {
		APIBaseURL     string
		RequestTimeout time.Duration
		TokenPath      string
	}

	Config struct {
		AppName                   string
		Build                     string
		Env                       string // DEV (default) | TEST | QA | PROD
		Debug                     bool
		TestMode                  bool
		WorkDir                   string
		SecretKey                 string
		FrontendBaseURL           string
		DefaultFromEmail          mail.Address
		RollbarToken              string
		SendgridApiKey            string
		PasswordResetTimeoutDelta time.Duration

		Server   ServerConfig
		Database DatabaseConfig
		Client   ClientConfig
	}
)

func (d DatabaseConfig) Address() string {
	return net.JoinHostPort(d.Host, d.Port)
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and environment variables (prefixed with the env name), in increasing
// order of precedence. It sets the package-level Conf and returns it.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	workDir := Getwd()

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "myLMS")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "do9*2q(y5&9+=p^8#^+c5p&s0e0_d$u0r$b1u4bhmga8f)#^+m")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)

	v.SetDefault("server.host", "0.0.0.0:8000")
	v.SetDefault("server.debugHost", "0.0.0.0:8001")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "mylms")
	v.SetDefault("database.user", "mylms")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.repos", "sqlboiler")

	v.SetDefault("client.apiBaseURL", "http://localhost:8000")
	v.SetDefault("client.requestTimeout", 10*time.Second)
	v.SetDefault("client.tokenPath", defaultTokenPath(workDir))

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := &Config{
		AppName:                   v.GetString("appName"),
		Build:                     v.GetString("build"),
		Env:                       env,
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("testMode"),
		WorkDir:                   workDir,
		SecretKey:                 v.GetString("secretKey"),
		FrontendBaseURL:           v.GetString("frontendBaseURL"),
		DefaultFromEmail:          mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		RollbarToken:              v.GetString("rollbarToken"),
		SendgridApiKey:            v.GetString("sendgridApiKey"),
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		Server: ServerConfig{
			Host:                      v.GetString("server.host"),
			DebugHost:                 v.GetString("server.debugHost"),
			ShutdownTimeout:           v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
			Repos:         v.GetString("database.repos"),
		},
		Client: ClientConfig{
			APIBaseURL:     v.GetString("client.apiBaseURL"),
			RequestTimeout: v.GetDuration("client.requestTimeout"),
			TokenPath:      v.GetString("client.tokenPath"),
		},
	}

	// secrets may be defaulted in DEV/TEST; anywhere else they are required
	if !(conf.Debug || conf.TestMode) {
		err := vala.BeginValidation().Validate(
			vala.StringNotEmpty(conf.SecretKey, "SECRET_KEY"),
			vala.StringNotEmpty(conf.RollbarToken, "ROLLBAR_TOKEN"),
			vala.StringNotEmpty(conf.SendgridApiKey, "SENDGRID_API_KEY"),
			vala.StringNotEmpty(conf.Database.Password, "DATABASE_PASSWORD"),
		).Check()
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	Conf = conf
	return conf
}

func defaultTokenPath(workDir string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mylms", "token")
	}
	return filepath.Join(workDir, ".mylms-token")
}
