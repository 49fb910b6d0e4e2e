package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		conf        Config
		wantMissing []string
	}{
		{
			name: "all credentials present",
			conf: Config{UserName: "u", PassWord: "p", Token: "t"},
		},
		{
			name:        "missing username",
			conf:        Config{PassWord: "p", Token: "t"},
			wantMissing: []string{"username"},
		},
		{
			name:        "missing token",
			conf:        Config{UserName: "u", PassWord: "p"},
			wantMissing: []string{"token"},
		},
		{
			name:        "missing everything",
			conf:        Config{},
			wantMissing: []string{"username", "password", "token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()

			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}

				return
			}

			credErr := IsCredentialsError(err)
			if credErr == nil {
				t.Fatalf("Validate() error = %v, want a CredentialsError", err)
			}

			missing := credErr.Missing()
			if len(missing) != len(tt.wantMissing) {
				t.Fatalf("Validate() missing = %v, want %v", missing, tt.wantMissing)
			}

			for i, want := range tt.wantMissing {
				if missing[i] != want {
					t.Errorf("Validate() missing[%d] = %q, want %q", i, missing[i], want)
				}
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("fails without credentials", func(t *testing.T) {
		t.Setenv("DIMS_USERNAME", "")
		t.Setenv("DIMS_PASSWORD", "")
		t.Setenv("DIMS_TOKEN", "")

		if _, err := FromEnv(); IsCredentialsError(err) == nil {
			t.Errorf("FromEnv() error = %v, want a CredentialsError", err)
		}
	})

	t.Run("applies defaults and overrides", func(t *testing.T) {
		t.Setenv("DIMS_USERNAME", "u")
		t.Setenv("DIMS_PASSWORD", "p")
		t.Setenv("DIMS_TOKEN", "t")
		t.Setenv("DIMS_INVENTORY_URL", "")
		t.Setenv("DIMS_RATES_URL", "")
		t.Setenv("DIMS_TIMEOUT_SECONDS", "5")

		conf, err := FromEnv()
		if err != nil {
			t.Fatalf("FromEnv() error = %v", err)
		}

		if conf.InventoryURL != defaultInventoryURL {
			t.Errorf("FromEnv() InventoryURL = %q, want the default", conf.InventoryURL)
		}

		if conf.RatesURL != defaultRatesURL {
			t.Errorf("FromEnv() RatesURL = %q, want the default", conf.RatesURL)
		}

		if conf.Timeout != 5*time.Second {
			t.Errorf("FromEnv() Timeout = %v, want 5s", conf.Timeout)
		}
	})
}
