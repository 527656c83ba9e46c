package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// HealthService reports whether the application can serve datasets
type HealthService struct {
	version     string
	datasetsDir string
	startTime   time.Time
	logger      *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version, datasetsDir string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:     version,
		datasetsDir: datasetsDir,
		startTime:   time.Now(),
		logger:      logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns "ok" when the dataset directory is readable and
// "degraded" otherwise. The process itself is always considered alive.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	datasets := hs.checkDatasets()

	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
		},
		Services: map[string]ServiceHealth{"datasets": datasets},
	}
	if datasets.Status != "ready" {
		status.Status = "degraded"
		hs.logger.WarnContext(ctx, "Health check degraded", slog.String("reason", datasets.Message))
	}
	return status
}

func (hs *HealthService) checkDatasets() ServiceHealth {
	info, err := os.Stat(hs.datasetsDir)
	switch {
	case os.IsNotExist(err):
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("dataset directory not found: %s", hs.datasetsDir)}
	case err != nil:
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("cannot access dataset directory: %v", err)}
	case !info.IsDir():
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("dataset path is not a directory: %s", hs.datasetsDir)}
	}

	f, err := os.Open(hs.datasetsDir)
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("cannot read dataset directory: %v", err)}
	}
	f.Close()

	return ServiceHealth{Status: "ready", Message: "dataset directory is readable"}
}
