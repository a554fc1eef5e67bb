package config

import (
	"strings"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	c := FromEnv(envOf(nil))

	if c.Addr != ":8080" {
		t.Errorf("Addr = %q", c.Addr)
	}
	if c.StoreDriver != DriverPostgres {
		t.Errorf("StoreDriver = %q", c.StoreDriver)
	}
	if c.SessionTTL != 168*time.Hour {
		t.Errorf("SessionTTL = %v", c.SessionTTL)
	}
	if c.PageSize != 12 || c.ContactRateLimit != 10 {
		t.Errorf("PageSize=%d ContactRateLimit=%d", c.PageSize, c.ContactRateLimit)
	}
	if !c.AuthRequired {
		t.Error("AuthRequired should default to true")
	}
	if c.UploadURLPrefix != "/uploads" || c.LogFormat != "json" {
		t.Errorf("UploadURLPrefix=%q LogFormat=%q", c.UploadURLPrefix, c.LogFormat)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	c := FromEnv(envOf(map[string]string{
		"STORE_DRIVER":      "Mongo",
		"FRONTEND_URL":      "https://homes.example.com/",
		"SESSION_TTL_HOURS": "2",
		"PAGE_SIZE":         "24",
		"REDIS_DB":          "3",
		"AUTH_REQUIRED":     "false",
		"UPLOAD_URL_PREFIX": "/assets/",
	}))

	if c.StoreDriver != DriverMongo {
		t.Errorf("StoreDriver = %q", c.StoreDriver)
	}
	if c.FrontendURL != "https://homes.example.com" {
		t.Errorf("FrontendURL = %q", c.FrontendURL)
	}
	if c.SessionTTL != 2*time.Hour || c.PageSize != 24 || c.RedisDB != 3 {
		t.Errorf("unexpected numbers %+v", c)
	}
	if c.AuthRequired {
		t.Error("AuthRequired should be false")
	}
	if c.UploadURLPrefix != "/assets" {
		t.Errorf("UploadURLPrefix = %q", c.UploadURLPrefix)
	}
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	c := FromEnv(envOf(map[string]string{"PAGE_SIZE": "abc", "CONTACT_RATE_LIMIT": "-1"}))
	if c.PageSize != 12 || c.ContactRateLimit != 10 {
		t.Errorf("PageSize=%d ContactRateLimit=%d", c.PageSize, c.ContactRateLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"defaults", nil, ""},
		{"memory in development", map[string]string{"STORE_DRIVER": "memory"}, ""},
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"production default secret", map[string]string{"ENV": "production"}, "SESSION_SECRET"},
		{"production without auth", map[string]string{"ENV": "production", "SESSION_SECRET": "s", "AUTH_REQUIRED": "false"}, "AUTH_REQUIRED"},
		{"production", map[string]string{"ENV": "production", "SESSION_SECRET": "s"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromEnv(envOf(tt.env)).Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
