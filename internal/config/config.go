// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"

	"github.com/fieldcms/fieldcms/internal/datetoolbox"
)

const (
	// EnvConfigJSON names the env var holding a JSON config override.
	EnvConfigJSON = "FIELDCMS_CONFIG_JSON"

	// DefaultAdminPrefix is the path of the administration area.
	DefaultAdminPrefix = "/admin"

	// DefaultDateFormat is used when neither the instance nor the config sets one.
	DefaultDateFormat = "Y-m-d"

	// DefaultTimeFormat is used when neither the instance nor the config sets one.
	DefaultTimeFormat = "H:i"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config override from env")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.AdminPrefix == "" {
		c.Webserver.AdminPrefix = DefaultAdminPrefix
	}

	if !strings.HasPrefix(c.Webserver.AdminPrefix, "/") {
		return errors.Wrap(ErrInvalidAdminPrefix, invalidErrMessage)
	}

	c.Webserver.AdminPrefix = strings.TrimSuffix(c.Webserver.AdminPrefix, "/")

	if c.Field.DateFormat == "" {
		c.Field.DateFormat = DefaultDateFormat
	}

	if !datetoolbox.ValidateDateFormat(c.Field.DateFormat) {
		return errors.Wrap(ErrInvalidDateFormat, invalidErrMessage)
	}

	if c.Field.TimeFormat == "" {
		c.Field.TimeFormat = DefaultTimeFormat
	}

	if !datetoolbox.ValidateTimeFormat(c.Field.TimeFormat) {
		return errors.Wrap(ErrInvalidTimeFormat, invalidErrMessage)
	}

	if _, err := c.Field.Location(); err != nil {
		return errors.Wrap(ErrInvalidTimezone, err.Error())
	}

	return nil
}
