package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/echo"
)

type Config struct {
	Server struct {
		Port     string
		LogLevel string
	}
	Echo struct {
		Enabled             bool
		TailGuardMs         int
		SimilarityThreshold float64
		EchoWindowMs        int
		MaxTracked          int
		Debug               bool
	}
	Pipeline struct {
		TokenSecret   string
		TokenSkewSecs int
	}
}

func Load() Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("echo.enabled", true)
	v.SetDefault("echo.tail_guard_ms", 700)
	v.SetDefault("echo.similarity_threshold", 0.85)
	v.SetDefault("echo.echo_window_ms", 2500)
	v.SetDefault("echo.max_tracked", 3)
	v.SetDefault("echo.debug", false)

	v.SetDefault("pipeline.token_skew_secs", 30)

	// Map envs
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.log_level", "LOG_LEVEL")

	v.BindEnv("echo.enabled", "ECHO_ENABLED")
	v.BindEnv("echo.tail_guard_ms", "ECHO_TAIL_GUARD_MS")
	v.BindEnv("echo.similarity_threshold", "ECHO_SIMILARITY_THRESHOLD")
	v.BindEnv("echo.echo_window_ms", "ECHO_WINDOW_MS")
	v.BindEnv("echo.max_tracked", "ECHO_MAX_TRACKED")
	v.BindEnv("echo.debug", "ECHO_DEBUG")

	v.BindEnv("pipeline.token_secret", "PIPELINE_TOKEN_SECRET")
	v.BindEnv("pipeline.token_skew_secs", "PIPELINE_TOKEN_SKEW_SECS")

	var c Config
	c.Server.Port = toString(v.Get("server.port"))
	c.Server.LogLevel = v.GetString("server.log_level")

	c.Echo.Enabled = v.GetBool("echo.enabled")
	c.Echo.TailGuardMs = v.GetInt("echo.tail_guard_ms")
	c.Echo.SimilarityThreshold = v.GetFloat64("echo.similarity_threshold")
	c.Echo.EchoWindowMs = v.GetInt("echo.echo_window_ms")
	c.Echo.MaxTracked = v.GetInt("echo.max_tracked")
	c.Echo.Debug = v.GetBool("echo.debug")

	c.Pipeline.TokenSecret = v.GetString("pipeline.token_secret")
	c.Pipeline.TokenSkewSecs = v.GetInt("pipeline.token_skew_secs")

	log.Printf("config loaded: port=%s echo_enabled=%v threshold=%.2f window=%dms tail_guard=%dms",
		c.Server.Port, c.Echo.Enabled, c.Echo.SimilarityThreshold, c.Echo.EchoWindowMs, c.Echo.TailGuardMs)
	return c
}

// EchoFilter converts the loaded settings into the filter configuration.
func (c Config) EchoFilter() echo.Config {
	return echo.Config{
		Enabled:             c.Echo.Enabled,
		TailGuard:           time.Duration(c.Echo.TailGuardMs) * time.Millisecond,
		SimilarityThreshold: c.Echo.SimilarityThreshold,
		EchoWindow:          time.Duration(c.Echo.EchoWindowMs) * time.Millisecond,
		MaxTracked:          c.Echo.MaxTracked,
		Debug:               c.Echo.Debug,
	}
}

func toString(v any) string { return fmt.Sprint(v) }
