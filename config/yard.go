package config

import (
	"fmt"
	"time"
)

// YardConfig shapes the in-memory yard.
type YardConfig struct {
	Docks             int    `json:"docks"`
	ScheduleStartHour int    `json:"schedule_start_hour"`
	ScheduleEndHour   int    `json:"schedule_end_hour"`
	// Timezone names the location used for displayed and exported times.
	Timezone string `json:"timezone"`
	// SeedCrew maps crew ids to names. Absent means the built-in roster.
	SeedCrew map[string]string `json:"seed_crew"`
}

func (c *YardConfig) SetDefaults() {
	if c.Docks == 0 {
		c.Docks = 21
	}
	if c.ScheduleStartHour == 0 && c.ScheduleEndHour == 0 {
		c.ScheduleStartHour = 8
		c.ScheduleEndHour = 17
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

func (c YardConfig) Validate() error {
	if c.Docks < 1 {
		return fmt.Errorf("docks must be positive, got %d", c.Docks)
	}
	if c.ScheduleStartHour < 0 || c.ScheduleEndHour > 24 || c.ScheduleStartHour >= c.ScheduleEndHour {
		return fmt.Errorf("invalid schedule window %d-%d", c.ScheduleStartHour, c.ScheduleEndHour)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c YardConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
