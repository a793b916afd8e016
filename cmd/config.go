package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// envPrefix namespaces the environment variables read by LoadEnvDefaults.
const envPrefix = "CHAMPAGNE"

// EnvDefaults holds flag defaults taken from CHAMPAGNE_* environment variables
// (optionally from a .env file). Nil fields were not set.
type EnvDefaults struct {
	Seed         *int64   `envconfig:"SEED"`
	Trials       *int     `envconfig:"TRIALS" validate:"omitempty,gte=0"`
	BottleLiters *float64 `envconfig:"BOTTLE_LITERS" validate:"omitempty,gt=0"`
	GlassesFile  *string  `envconfig:"GLASSES_FILE" validate:"omitempty,min=1"`
	LogLevel     *string  `envconfig:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Workers      *int     `envconfig:"WORKERS" validate:"omitempty,gte=1"`
}

// LoadEnvDefaults reads CHAMPAGNE_* variables. A missing .env file is not an error.
func LoadEnvDefaults() (*EnvDefaults, error) {
	_ = godotenv.Load()

	var env EnvDefaults
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("reading %s_* environment: %w", envPrefix, err)
	}
	if err := validator.New().Struct(env); err != nil {
		return nil, fmt.Errorf("invalid %s_* environment: %w", envPrefix, err)
	}
	return &env, nil
}

// flagValues maps flag names to the environment values that should seed them.
func (e *EnvDefaults) flagValues() map[string]string {
	v := make(map[string]string)
	if e.Seed != nil {
		v["seed"] = strconv.FormatInt(*e.Seed, 10)
	}
	if e.Trials != nil {
		v["trials"] = strconv.Itoa(*e.Trials)
	}
	if e.BottleLiters != nil {
		v["bottle-liters"] = strconv.FormatFloat(*e.BottleLiters, 'g', -1, 64)
	}
	if e.GlassesFile != nil {
		v["glasses-file"] = *e.GlassesFile
	}
	if e.LogLevel != nil {
		v["log"] = *e.LogLevel
	}
	if e.Workers != nil {
		v["workers"] = strconv.Itoa(*e.Workers)
	}
	return v
}

// applyEnvDefaults sets every flag of cmd that has an environment value and was
// not given on the command line. Flags the command does not define are ignored.
func applyEnvDefaults(cmd *cobra.Command, env *EnvDefaults) error {
	for name, value := range env.flagValues() {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("applying %s_* default for --%s: %w", envPrefix, name, err)
		}
	}
	return nil
}
