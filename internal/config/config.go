package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Role defines the access level of a staff account
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleReception Role = "reception"
)

// StaffAccount is one environment-configured login. The clinic runs on
// two desk accounts; there is no user database.
type StaffAccount struct {
	Username     string
	PasswordHash string
	Role         Role
}

// CheckPassword compares a login attempt with the account's stored hash
func (a *StaffAccount) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	ClinicName           string
	JWTSecret            string
	JWTExpirationMinutes int
	Storage              StorageConfig
	Accounts             []StaffAccount
}

// StorageConfig holds the flat-file store locations, all rooted under
// the data directory
type StorageConfig struct {
	DataDir          string
	CombinedLogPath  string
	BillsDir         string
	AppointmentsPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dataDir := getEnv("DATA_DIR", "data")

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	accounts, err := loadAccounts()
	if err != nil {
		return nil, err
	}

	// Return complete configuration
	return &Config{
		Port:                 getEnv("PORT", "3001"),
		Origin:               getEnv("ORIGIN", "http://localhost:4200"),
		Environment:          getEnv("APP_ENV", "development"),
		ClinicName:           getEnv("CLINIC_NAME", "Bright Smile Dental Clinic"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Storage: StorageConfig{
			DataDir:          dataDir,
			CombinedLogPath:  filepath.Join(dataDir, "patient_bills.txt"),
			BillsDir:         filepath.Join(dataDir, "bills"),
			AppointmentsPath: filepath.Join(dataDir, "appointments.json"),
		},
		Accounts: accounts,
	}, nil
}

// loadAccounts hashes the desk passwords at boot so only hashes stay in
// memory afterwards
func loadAccounts() ([]StaffAccount, error) {
	specs := []struct {
		userKey, passKey string
		defUser, defPass string
		role             Role
	}{
		{"ADMIN_USERNAME", "ADMIN_PASSWORD", "admin", "admin123", RoleAdmin},
		{"RECEPTION_USERNAME", "RECEPTION_PASSWORD", "reception", "reception123", RoleReception},
	}
	accounts := make([]StaffAccount, 0, len(specs))
	for _, spec := range specs {
		hash, err := bcrypt.GenerateFromPassword([]byte(getEnv(spec.passKey, spec.defPass)), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing %s: %w", spec.passKey, err)
		}
		accounts = append(accounts, StaffAccount{
			Username:     getEnv(spec.userKey, spec.defUser),
			PasswordHash: string(hash),
			Role:         spec.role,
		})
	}
	return accounts, nil
}

// FindAccount returns the staff account with the given username
func (c *Config) FindAccount(username string) (*StaffAccount, bool) {
	for i := range c.Accounts {
		if c.Accounts[i].Username == username {
			return &c.Accounts[i], true
		}
	}
	return nil, false
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
