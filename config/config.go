package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Getenv returns the value of key or def when unset.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// InitDB opens the MySQL connection described by the environment and
// bounds the connection pool. All credentials come from the
// environment; there are no built-in defaults for secrets.
func InitDB() (*gorm.DB, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	host := Getenv("DB_HOST", "127.0.0.1")
	port := Getenv("DB_PORT", "3306")
	name := os.Getenv("DB_NAME")

	if user == "" || name == "" {
		return nil, fmt.Errorf("DB_USER and DB_NAME must be set")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Bounded pool: when it is exhausted, callers queue for a
	// connection instead of opening unbounded ones.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(getenvInt("DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(getenvInt("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Duration(getenvInt("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute)

	return db, nil
}
