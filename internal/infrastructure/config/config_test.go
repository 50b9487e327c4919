package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "standard configuration",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				Database: "testdb",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable",
		},
		{
			name: "production configuration",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				User:     "produser",
				Password: "securepass123",
				Database: "proddb",
				SSLMode:  "require",
			},
			want: "host=db.example.com port=5433 user=produser password=securepass123 dbname=proddb sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ConnectionString(); got != tt.want {
				t.Errorf("DatabaseConfig.ConnectionString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	// Save original working directory
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)

	tests := []struct {
		name    string
		env     string
		wantErr bool
	}{
		{
			name:    "default dev environment",
			env:     "",
			wantErr: false,
		},
		{
			name:    "explicit dev environment",
			env:     "dev",
			wantErr: false,
		},
		{
			name:    "test environment",
			env:     "test",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			err := InitConfig(tt.env)
			if (err != nil) != tt.wantErr {
				t.Errorf("InitConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			// Verify default values are set
			if !tt.wantErr {
				if viper.GetString("SERVER_HOST") != "0.0.0.0" {
					t.Errorf("InitConfig() SERVER_HOST = %v, want 0.0.0.0", viper.GetString("SERVER_HOST"))
				}
				if viper.GetInt("SERVER_PORT") != 5000 {
					t.Errorf("InitConfig() SERVER_PORT = %v, want 5000", viper.GetInt("SERVER_PORT"))
				}
				if viper.GetString("DB_HOST") != "localhost" {
					t.Errorf("InitConfig() DB_HOST = %v, want localhost", viper.GetString("DB_HOST"))
				}
				if viper.GetInt("SESSION_TTL_MINUTES") != 720 {
					t.Errorf("InitConfig() SESSION_TTL_MINUTES = %v, want 720", viper.GetInt("SESSION_TTL_MINUTES"))
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func()
		wantErr     bool
		wantErrMsg  string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "successful load",
			setupEnv: func() {
				viper.Reset()
				viper.Set("DB_PASSWORD", "testpassword")
				viper.Set("ADMIN_PASSWORD", "seedpass")
				viper.SetDefault("SERVER_HOST", "0.0.0.0")
				viper.SetDefault("SERVER_PORT", 5000)
				viper.SetDefault("DB_HOST", "localhost")
				viper.SetDefault("DB_PORT", 15432)
				viper.SetDefault("DB_USER", "giveaway")
				viper.SetDefault("DB_NAME", "giveaway_dev")
				viper.SetDefault("DB_SSLMODE", "disable")
				viper.SetDefault("SESSION_TTL_MINUTES", 720)
			},
			wantErr: false,
			validateCfg: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 5000 {
					t.Errorf("Load() Server.Port = %v, want 5000", cfg.Server.Port)
				}
				if cfg.Database.Password != "testpassword" {
					t.Errorf("Load() Database.Password = %v, want testpassword", cfg.Database.Password)
				}
				if cfg.Admin.Password != "seedpass" {
					t.Errorf("Load() Admin.Password = %v, want seedpass", cfg.Admin.Password)
				}
				if cfg.Session.TTLMinutes != 720 {
					t.Errorf("Load() Session.TTLMinutes = %v, want 720", cfg.Session.TTLMinutes)
				}
			},
		},
		{
			name: "missing database password",
			setupEnv: func() {
				viper.Reset()
				viper.Set("ADMIN_PASSWORD", "seedpass")
			},
			wantErr:    true,
			wantErrMsg: "DB_PASSWORD is required (set via environment variable or .env file)",
		},
		{
			name: "missing admin password",
			setupEnv: func() {
				viper.Reset()
				viper.Set("DB_PASSWORD", "testpassword")
			},
			wantErr:    true,
			wantErrMsg: "ADMIN_PASSWORD is required (set via environment variable or .env file)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			defer viper.Reset()

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if err.Error() != tt.wantErrMsg {
					t.Errorf("Load() error = %v, want %v", err.Error(), tt.wantErrMsg)
				}
				return
			}

			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)

	root, err := findProjectRoot()
	if err != nil {
		t.Errorf("findProjectRoot() error = %v, want nil", err)
		return
	}

	goModPath := root + "/go.mod"
	if _, err := os.Stat(goModPath); os.IsNotExist(err) {
		t.Errorf("findProjectRoot() returned %v, but go.mod does not exist at %v", root, goModPath)
	}
}
