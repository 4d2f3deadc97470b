package config

import (
	"fmt"

	"github.com/kilianp07/dockyard/core/factory"
)

// MetricsConfig lists the metric sinks and the Prometheus listener port.
// A zero PrometheusPort disables the /metrics server.
type MetricsConfig struct {
	Sinks          []factory.ModuleConfig `json:"sinks"`
	PrometheusPort int                    `json:"prometheus_port"`
}

func (c *MetricsConfig) SetDefaults() {
	if len(c.Sinks) == 0 {
		c.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	}
}

func (c MetricsConfig) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("sinks[%d]: type is required", i)
		}
	}
	if c.PrometheusPort < 0 || c.PrometheusPort > 65535 {
		return fmt.Errorf("invalid prometheus_port %d", c.PrometheusPort)
	}
	return nil
}

// PrometheusAddr returns the listen address, or "" when disabled.
func (c MetricsConfig) PrometheusAddr() string {
	if c.PrometheusPort == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.PrometheusPort)
}
