package services

import (
	"context"
	"time"

	"pasarcli/internal/brandstore"
)

// HealthStatus is the readiness snapshot served at /healthz.
type HealthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	BrandMappings int    `json:"brand_mappings"`
	Timestamp     string `json:"timestamp"`
}

// HealthService reports process health.
type HealthService struct {
	startedAt time.Time
	version   string
	brands    *brandstore.Store
}

// NewHealthService creates a health service.
func NewHealthService(version string, brands *brandstore.Store) *HealthService {
	return &HealthService{
		startedAt: time.Now(),
		version:   version,
		brands:    brands,
	}
}

// Health returns the current status snapshot.
func (s *HealthService) Health(ctx context.Context) HealthStatus {
	count := 0
	if s.brands != nil {
		count = s.brands.Count()
	}
	return HealthStatus{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		BrandMappings: count,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
}
