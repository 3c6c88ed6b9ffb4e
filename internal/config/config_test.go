package config

import "testing"

func validConfig() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:4000/api/v1",
		TokenPath:      "/tmp/token",
		RequestTimeout: 15,
		PageSize:       20,
		LogLevel:       "info",
		Env:            "test",
		TraceExporter:  "stdout",
		TraceSample:    1.0,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "missing base url", mutate: func(c *Config) { c.APIBaseURL = "" }, ok: false},
		{name: "malformed base url", mutate: func(c *Config) { c.APIBaseURL = "not a url" }, ok: false},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, ok: false},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }, ok: false},
		{name: "oversized page size", mutate: func(c *Config) { c.PageSize = 500 }, ok: false},
		{name: "otlp without endpoint", mutate: func(c *Config) {
			c.TracingEnabled = true
			c.TraceExporter = "otlp"
			c.OTLPEndpoint = ""
		}, ok: false},
		{name: "otlp with endpoint", mutate: func(c *Config) {
			c.TracingEnabled = true
			c.TraceExporter = "otlp"
			c.OTLPEndpoint = "localhost:4318"
		}, ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
