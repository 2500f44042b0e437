// internal/config/database.go
package config

import (
	"fmt"
)

// DSN builds the postgres connection string. The platform settles earnings in
// INR, so timestamps are anchored to IST.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Asia/Kolkata",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}
