package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"edgeofdark/internal/combat"
	"edgeofdark/internal/components"
	"edgeofdark/internal/interact"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FileName  = "edgeofdark"
	EnvPrefix = "EDGEOFDARK"
)

type Config struct {
	LogLevel  string          `mapstructure:"logLevel"`
	LogJSON   bool            `mapstructure:"logJSON"`
	LogFile   string          `mapstructure:"logFile"`
	Level     string          `mapstructure:"level"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Window    WindowConfig    `mapstructure:"window"`
	Interact  InteractConfig  `mapstructure:"interact"`
	Melee     MeleeConfig     `mapstructure:"melee"`
	Staff     StaffConfig     `mapstructure:"staff"`
}

// TelemetryConfig controls OTel metric export. With File empty the
// batches go to stderr.
type TelemetryConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	File            string  `mapstructure:"file"`
	IntervalSeconds float64 `mapstructure:"intervalSeconds"`
}

// Interval is the export period.
func (t TelemetryConfig) Interval() time.Duration {
	return seconds(t.IntervalSeconds)
}

type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	FPS    int    `mapstructure:"fps"`
}

type InteractConfig struct {
	MaxDistance    float32 `mapstructure:"maxDistance"`
	HighlightColor string  `mapstructure:"highlightColor"`
	HighlightBlend float32 `mapstructure:"highlightBlend"`
	EmissionScale  float32 `mapstructure:"emissionScale"`
	DropForward    float32 `mapstructure:"dropForward"`
	DropDown       float32 `mapstructure:"dropDown"`
	TossForward    float32 `mapstructure:"tossForward"`
	TossUp         float32 `mapstructure:"tossUp"`
}

type MeleeConfig struct {
	Damage        float32 `mapstructure:"damage"`
	WindowSeconds float64 `mapstructure:"windowSeconds"`
	CloseOnLethal bool    `mapstructure:"closeOnLethal"`
}

type StaffConfig struct {
	Damage           float32 `mapstructure:"damage"`
	Range            float32 `mapstructure:"range"`
	TravelTime       float64 `mapstructure:"travelTime"`
	CooldownSeconds  float64 `mapstructure:"cooldownSeconds"`
	DestroyOnHit     bool    `mapstructure:"destroyOnHit"`
	ProjectileRadius float32 `mapstructure:"projectileRadius"`
	ProjectileColor  string  `mapstructure:"projectileColor"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logJSON", false)
	v.SetDefault("logFile", "")
	v.SetDefault("level", "")

	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.file", "")
	v.SetDefault("telemetry.intervalSeconds", 10.0)

	v.SetDefault("window.title", "Edge of Dark")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.fps", 120)

	v.SetDefault("interact.maxDistance", 4.0)
	v.SetDefault("interact.highlightColor", "#FFFF00")
	v.SetDefault("interact.highlightBlend", 0.9)
	v.SetDefault("interact.emissionScale", 1.2)
	v.SetDefault("interact.dropForward", 1.0)
	v.SetDefault("interact.dropDown", 0.2)
	v.SetDefault("interact.tossForward", 2.0)
	v.SetDefault("interact.tossUp", 0.5)

	v.SetDefault("melee.damage", 0.2)
	v.SetDefault("melee.windowSeconds", 0.25)
	v.SetDefault("melee.closeOnLethal", false)

	v.SetDefault("staff.damage", 0.2)
	v.SetDefault("staff.range", 12.0)
	v.SetDefault("staff.travelTime", 0.8)
	v.SetDefault("staff.cooldownSeconds", 0.5)
	v.SetDefault("staff.destroyOnHit", true)
	v.SetDefault("staff.projectileRadius", 0.25)
	v.SetDefault("staff.projectileColor", "SkyBlue")
}

// Load reads dir/.env (optional), then dir/edgeofdark.json (optional), then
// EDGEOFDARK_* environment overrides on top of the defaults. An empty dir
// skips both files.
func Load(dir string) (Config, error) {
	return LoadWithFlags(dir, nil)
}

// LoadWithFlags is Load with command-line flags from Flags taking
// precedence over everything else when set.
func LoadWithFlags(dir string, flags *pflag.FlagSet) (Config, error) {
	if dir != "" {
		if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("error reading .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("error binding flags: %w", err)
		}
	}

	if dir != "" {
		v.SetConfigName(FileName)
		v.SetConfigType("json")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default is the configuration with no file and no environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func (c Config) Validate() error {
	if _, ok := components.ParseColor(c.Interact.HighlightColor); !ok {
		return fmt.Errorf("interact.highlightColor: unknown color %q", c.Interact.HighlightColor)
	}
	if _, ok := components.ParseColor(c.Staff.ProjectileColor); !ok {
		return fmt.Errorf("staff.projectileColor: unknown color %q", c.Staff.ProjectileColor)
	}
	if c.Interact.MaxDistance <= 0 {
		return errors.New("interact.maxDistance must be positive")
	}
	if c.Melee.WindowSeconds < 0 || c.Staff.TravelTime < 0 || c.Staff.CooldownSeconds < 0 || c.Telemetry.IntervalSeconds < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Tuning converts the weapon sections.
func (c Config) Tuning() combat.Tuning {
	t := combat.DefaultTuning()
	t.MeleeDamage = c.Melee.Damage
	t.MeleeWindow = seconds(c.Melee.WindowSeconds)
	t.CloseOnLethal = c.Melee.CloseOnLethal
	t.StaffDamage = c.Staff.Damage
	t.StaffRange = c.Staff.Range
	t.StaffTravelTime = seconds(c.Staff.TravelTime)
	t.StaffCooldown = seconds(c.Staff.CooldownSeconds)
	t.DestroyOnHit = c.Staff.DestroyOnHit
	t.ProjectileRadius = c.Staff.ProjectileRadius
	if col, ok := components.ParseColor(c.Staff.ProjectileColor); ok {
		t.ProjectileColor = col
	}
	return t
}

func (c Config) DropTuning() interact.DropTuning {
	return interact.DropTuning{
		Forward:     c.Interact.DropForward,
		Down:        c.Interact.DropDown,
		TossForward: c.Interact.TossForward,
		TossUp:      c.Interact.TossUp,
	}
}

func (c Config) Emphasizer() *interact.MaterialEmphasizer {
	e := interact.NewMaterialEmphasizer()
	if col, ok := components.ParseColor(c.Interact.HighlightColor); ok {
		e.Color = col
	}
	e.Blend = c.Interact.HighlightBlend
	e.EmissionScale = c.Interact.EmissionScale
	return e
}
