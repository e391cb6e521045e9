package updater

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "2.0.0", true},
		{"1.2.3", "1.2.3", false},
		{"1.2.3", "1.2.2", false},
		{"2.0.0", "1.9.9", false},
		{"1.0", "1.0.1", true},
		{"dev", "1.0.0", false},
		{"", "1.0.0", false},
		{"1.0.0", "", false},
	}
	for _, tt := range tests {
		if got := isNewer(tt.current, tt.latest); got != tt.want {
			t.Errorf("isNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestCheckVersion_UpdateAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name": "v1.2.0", "html_url": "https://example.com/release"}`))
	}))
	defer srv.Close()

	origEndpoint, origClient := releaseEndpoint, httpClient
	releaseEndpoint, httpClient = srv.URL, srv.Client()
	defer func() { releaseEndpoint, httpClient = origEndpoint, origClient }()

	result := CheckVersion("1.0.0")
	if !result.UpdateAvailable {
		t.Fatal("expected update to be available")
	}
	if result.LatestVersion != "1.2.0" {
		t.Errorf("LatestVersion = %s, want 1.2.0", result.LatestVersion)
	}
	if result.ReleaseURL != "https://example.com/release" {
		t.Errorf("ReleaseURL = %s", result.ReleaseURL)
	}
}

func TestCheckVersion_NetworkFailureIsSilent(t *testing.T) {
	origEndpoint := releaseEndpoint
	releaseEndpoint = "http://127.0.0.1:1/nope"
	defer func() { releaseEndpoint = origEndpoint }()

	result := CheckVersion("1.0.0")
	if result.UpdateAvailable {
		t.Error("network failure must not report an available update")
	}
	if result.CurrentVersion != "1.0.0" {
		t.Errorf("CurrentVersion = %s, want 1.0.0", result.CurrentVersion)
	}
}

func TestCheckVersion_DevBuildNeverUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v99.0.0", "html_url": ""}`))
	}))
	defer srv.Close()

	origEndpoint, origClient := releaseEndpoint, httpClient
	releaseEndpoint, httpClient = srv.URL, srv.Client()
	defer func() { releaseEndpoint, httpClient = origEndpoint, origClient }()

	if CheckVersion("dev").UpdateAvailable {
		t.Error("dev build must never report an available update")
	}
}
