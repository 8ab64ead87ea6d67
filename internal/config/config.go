package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Module provides the application configuration.
var Module = fx.Provide(Load)

// Backend selects the persistence implementation.
const (
	BackendSQL       = "sql"
	BackendFirestore = "firestore"
)

// Config holds application configuration. It is built once at startup and
// passed explicitly to every component; nothing reads settings ambiently.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenAddr  string

	// Backend is either "sql" or "firestore".
	Backend string

	DBType            string
	DBPath            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	// AttachmentRoot is the folder invoice attachments are copied into,
	// laid out as {root}/{company}/{year}/{month}.
	AttachmentRoot string
	BackupDir      string

	Firestore FirestoreConfig
}

// FirestoreConfig holds the cloud backend settings.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
	Bucket          string
}

func (c Config) IsFirestore() bool {
	return c.Backend == BackendFirestore
}

// Load reads the JSON settings file (CONTALIBRO_SETTINGS, default
// ./settings.json), then applies CONTALIBRO_* environment overrides.
// A missing settings file is not an error; the defaults target a local
// single-user SQLite installation.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("contalibro")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", "contalibro")
	v.SetDefault("app_version", "0.1.0")
	v.SetDefault("environment", "development")
	v.SetDefault("listen_addr", "127.0.0.1:8321")
	v.SetDefault("backend", BackendSQL)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "contalibro.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conn", 2)
	v.SetDefault("database.max_open_conn", 1)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("attachment_root", "adjuntos")
	v.SetDefault("backup_dir", "respaldos")

	settings := v.GetString("settings")
	if settings == "" {
		settings = "settings.json"
	}
	v.SetConfigFile(settings)
	// Defaults plus env overrides are a complete configuration on their
	// own; a missing or unreadable settings file falls through to them.
	_ = v.ReadInConfig()

	return Config{
		AppName:           v.GetString("app_name"),
		AppVersion:        v.GetString("app_version"),
		Environment:       v.GetString("environment"),
		ListenAddr:        v.GetString("listen_addr"),
		Backend:           normalizeBackend(v.GetString("backend")),
		DBType:            v.GetString("database.type"),
		DBPath:            v.GetString("database.path"),
		DBHost:            v.GetString("database.host"),
		DBPort:            v.GetString("database.port"),
		DBName:            v.GetString("database.name"),
		DBUser:            v.GetString("database.user"),
		DBPassword:        v.GetString("database.password"),
		DBSSLMode:         v.GetString("database.sslmode"),
		DBMaxIdleConn:     v.GetInt("database.max_idle_conn"),
		DBMaxOpenConn:     v.GetInt("database.max_open_conn"),
		DBConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		AttachmentRoot:    v.GetString("attachment_root"),
		BackupDir:         v.GetString("backup_dir"),
		Firestore: FirestoreConfig{
			ProjectID:       v.GetString("firestore.project_id"),
			CredentialsFile: v.GetString("firestore.credentials_file"),
			Bucket:          v.GetString("firestore.bucket"),
		},
	}
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case BackendFirestore, "firebase", "cloud":
		return BackendFirestore
	default:
		return BackendSQL
	}
}
