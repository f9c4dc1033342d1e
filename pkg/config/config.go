package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything needed to build an engine for one match.
type Config struct {
	TotalTurns        int     // turns in a match; the goal is half of that, so it must be even
	Engine            string  // ensemble | bush-mosteller | random
	LeftProb          float64 // bush-mosteller initial split
	RightProb         float64
	AspirationDivider float64
	LearningRate      float64
	Seed              int64 // 0 picks a time-based seed
	LogLevel          string
}

// Default mirrors the original game: 50 turns, an even split and the textbook
// Bush-Mosteller parameters.
func Default() Config {
	return Config{
		TotalTurns:        50,
		Engine:            "ensemble",
		LeftProb:          0.5,
		RightProb:         0.5,
		AspirationDivider: 2.0,
		LearningRate:      0.5,
		LogLevel:          "info",
	}
}

// Load reads .env when present, then the process environment. Malformed
// numbers fall back to defaults; the result is validated.
func Load() (Config, error) {
	_ = godotenv.Load()

	def := Default()
	cfg := Config{
		TotalTurns:        atoiDef(os.Getenv("MR_TOTAL_TURNS"), def.TotalTurns),
		Engine:            strings.ToLower(getenv("MR_ENGINE", def.Engine)),
		LeftProb:          atofDef(os.Getenv("MR_L_PROB"), def.LeftProb),
		RightProb:         atofDef(os.Getenv("MR_R_PROB"), def.RightProb),
		AspirationDivider: atofDef(os.Getenv("MR_ASPIRATION_DIVIDER"), def.AspirationDivider),
		LearningRate:      atofDef(os.Getenv("MR_LEARNING_RATE"), def.LearningRate),
		Seed:              int64(atoiDef(os.Getenv("MR_SEED"), 0)),
		LogLevel:          strings.ToLower(getenv("LOG_LEVEL", def.LogLevel)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values an engine cannot recover from.
func (c Config) Validate() error {
	if c.TotalTurns < 2 || c.TotalTurns%2 != 0 {
		return errors.Wrapf(ErrInvalidConfig, "total turns must be an even number of at least 2, got %d", c.TotalTurns)
	}
	if c.LeftProb < 0 || c.RightProb < 0 || math.Abs(c.LeftProb+c.RightProb-1) > 1e-3 {
		return errors.Wrapf(ErrInvalidConfig, "probabilities must sum to 1, got %v + %v", c.LeftProb, c.RightProb)
	}
	if c.AspirationDivider == 0 || math.Abs(1/c.AspirationDivider) >= 1 {
		return errors.Wrapf(ErrInvalidConfig, "aspiration divider must exceed 1 in magnitude, got %v", c.AspirationDivider)
	}
	if c.LearningRate < 0 || c.LearningRate > 1 {
		return errors.Wrapf(ErrInvalidConfig, "learning rate must be in [0, 1], got %v", c.LearningRate)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// ApplyLogLevel sets the logrus level; Validate has already checked it parses.
func (c Config) ApplyLogLevel() {
	if lvl, err := log.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func atofDef(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return def
	}
	return f
}
