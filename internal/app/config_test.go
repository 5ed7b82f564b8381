package app

import (
	"strings"
	"testing"
	"time"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/service"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "MOUNT_PREFIX", "STORE_DRIVER", "ORDER_STATUS_POLICY", "DELIVERY_FEE", "FREE_DELIVERY_THRESHOLD", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MountPrefix != "/make-server-6bcb6267" {
		t.Errorf("prefix = %q", cfg.MountPrefix)
	}
	if cfg.StoreDriver != DriverMemory || cfg.StatusPolicy != service.PolicyPermissive {
		t.Errorf("driver=%q policy=%q", cfg.StoreDriver, cfg.StatusPolicy)
	}
	if !cfg.Pricing.DeliveryFee.Equal(model.Money("8.99")) || !cfg.Pricing.FreeThreshold.Equal(model.Money("50")) {
		t.Errorf("pricing = %+v", cfg.Pricing)
	}
	if cfg.JWTSecret == "" {
		t.Error("dev config should fall back to a development secret")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MOUNT_PREFIX", "api/")
	t.Setenv("ORDER_STATUS_POLICY", "Strict")
	t.Setenv("DELIVERY_FEE", "5")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("STORE_DRIVER", "file")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MountPrefix != "/api" {
		t.Errorf("prefix = %q", cfg.MountPrefix)
	}
	if cfg.StatusPolicy != service.PolicyStrict {
		t.Errorf("policy = %q", cfg.StatusPolicy)
	}
	if !cfg.Pricing.DeliveryFee.Equal(model.Money("5")) {
		t.Errorf("fee = %s", cfg.Pricing.DeliveryFee)
	}
	if cfg.StorePolicy.Timeout != 750*time.Millisecond || cfg.StoreDriver != DriverFile {
		t.Errorf("store = %q %+v", cfg.StoreDriver, cfg.StorePolicy)
	}
}

func TestLoadConfigReportsEveryBadValue(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	t.Setenv("DELIVERY_FEE", "-1")
	t.Setenv("STORE_RETRIES", "many")
	t.Setenv("ORDER_STATUS_POLICY", "chaotic")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"JWT_SECRET", "DB_DSN", "DELIVERY_FEE", "STORE_RETRIES", "chaotic"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
