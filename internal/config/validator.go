package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any
// are invalid. Call after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	regression := viper.GetFloat64("speedup.regression")
	exceptional := viper.GetFloat64("speedup.exceptional")
	if regression <= 0 {
		errors = append(errors, fmt.Sprintf("speedup.regression must be positive, got: %v", regression))
	}
	if exceptional <= 0 {
		errors = append(errors, fmt.Sprintf("speedup.exceptional must be positive, got: %v", exceptional))
	}
	if regression > 0 && exceptional > 0 && exceptional < regression {
		errors = append(errors, fmt.Sprintf("speedup.exceptional (%v) must not be below speedup.regression (%v)", exceptional, regression))
	}

	if viper.GetString("objdump") == "" {
		errors = append(errors, "objdump must not be empty")
	}
	if viper.GetString("report") == "" {
		errors = append(errors, "report must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
