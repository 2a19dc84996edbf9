// Package config gathers process configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr string

	// CatalogPath points at the YAML product catalog.
	CatalogPath string

	// UpstreamBaseURL is the feature gateway; CaseBaseURL the Orinoco
	// case-management API.
	UpstreamBaseURL string
	CaseBaseURL     string

	// SimulateUpstream replaces the live gateway with the in-process
	// simulator. Intended for local runs and test deployments.
	SimulateUpstream bool

	// SidecarBaseURL is the local token sidecar used by the live gateway
	// client.
	SidecarBaseURL string

	// PostgresDSN selects the durable call-log store; empty means in-memory.
	PostgresDSN string

	// RedisURL selects the shared idempotency guard; empty means in-memory.
	RedisURL string

	ShutdownTimeout time.Duration
}

// FromEnv builds a Config from environment variables, applying development
// defaults where unset.
func FromEnv() Config {
	return Config{
		Addr:             envOr("ONBOARDING_ADDR", ":8080"),
		CatalogPath:      envOr("ONBOARDING_CATALOG_PATH", "configs/catalog.yaml"),
		UpstreamBaseURL:  envOr("ONBOARDING_UPSTREAM_URL", "https://upstream.api"),
		CaseBaseURL:      envOr("ONBOARDING_CASE_URL", "https://upstream.api"),
		SimulateUpstream: os.Getenv("ONBOARDING_SIMULATE_UPSTREAM") == "true",
		SidecarBaseURL:   envOr("ONBOARDING_SIDECAR_URL", "http://localhost:8180"),
		PostgresDSN:      os.Getenv("ONBOARDING_POSTGRES_DSN"),
		RedisURL:         os.Getenv("ONBOARDING_REDIS_URL"),
		ShutdownTimeout:  10 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
