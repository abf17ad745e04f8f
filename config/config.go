// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/se"
	"github.com/rickar/cal/v2/us"
	"github.com/spf13/viper"

	"github.com/vartfanskaviluncha/lunchhours/lunch"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Holiday sets selectable with the holidays key.
var regions = map[string][]*cal.Holiday{
	"se": se.Holidays,
	"us": us.Holidays,
}

type Config struct {
	// Holidays names the region whose public holidays PH selects. Empty
	// means PH never matches.
	Holidays string `mapstructure:"holidays"`

	// Timezone is the IANA zone lunch is computed in. Empty means the
	// zone of the process.
	Timezone string `mapstructure:"timezone"`

	Debug bool `mapstructure:"debug"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("lunchcheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/lunchcheck")
	}

	v.SetDefault("holidays", "")
	v.SetDefault("timezone", "")
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if _, err := cfg.HolidayCalendar(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: 'timezone' of '%s' invalid: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// HolidayCalendar returns the calendar for the configured region, or nil if
// none is configured.
func (c *Config) HolidayCalendar() (*cal.BusinessCalendar, error) {
	if c.Holidays == "" {
		return nil, nil
	}
	holidays, ok := regions[c.Holidays]
	if !ok {
		return nil, fmt.Errorf("%w: 'holidays' region '%s' unknown", ErrInvalidConfig, c.Holidays)
	}

	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(holidays...)
	return calendar, nil
}

// Checker returns a lunch.Checker reading now from clock in the configured
// zone.
func (c *Config) Checker(clock func() time.Time) (lunch.Checker, error) {
	loc, err := c.Location()
	if err != nil {
		return lunch.Checker{}, err
	}
	holidays, err := c.HolidayCalendar()
	if err != nil {
		return lunch.Checker{}, err
	}

	return lunch.Checker{
		Now: func() time.Time {
			return clock().In(loc)
		},
		Holidays: holidays,
	}, nil
}
