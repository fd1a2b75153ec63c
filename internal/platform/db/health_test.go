package db

import (
	"errors"
	"net/http"
	"testing"
)

func TestHealthResponse_Healthy(t *testing.T) {
	stats := &PoolStats{TotalConns: 5, IdleConns: 3, AcquiredConns: 2, Healthy: true}

	code, body := healthResponse(nil, stats)

	if code != http.StatusOK {
		t.Errorf("code = %d, want %d", code, http.StatusOK)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if _, ok := body["error"]; ok {
		t.Error("healthy response should not carry an error field")
	}
	if !stats.Healthy {
		t.Error("stats.Healthy flipped on a successful ping")
	}
}

func TestHealthResponse_PingFailure(t *testing.T) {
	stats := &PoolStats{TotalConns: 5, Healthy: true}

	code, body := healthResponse(errors.New("connection refused"), stats)

	if code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want %d", code, http.StatusServiceUnavailable)
	}
	if body["status"] != "unhealthy" {
		t.Errorf("status = %v, want unhealthy", body["status"])
	}
	if body["error"] != "connection refused" {
		t.Errorf("error = %v, want connection refused", body["error"])
	}
	if stats.Healthy {
		t.Error("stats.Healthy must be false after a failed ping")
	}
}
