package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ResolveMySQLDSN prefers MYSQL_URL, then DATABASE_URL (either a mysql://
// URL or a driver DSN), then the DB_* variables.
func ResolveMySQLDSN(c Config) (*mysqldriver.Config, error) {
	raw := strings.TrimSpace(c.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(c.DatabaseURL)
	}

	var (
		cfg *mysqldriver.Config
		err error
	)
	switch {
	case strings.HasPrefix(raw, "mysql://"):
		u, perr := url.Parse(raw)
		if perr != nil {
			return nil, fmt.Errorf("invalid mysql url: %w", perr)
		}
		pass, _ := u.User.Password()
		base := newMySQLConfig(u.User.Username(), pass, u.Hostname(), u.Port(), strings.TrimPrefix(u.Path, "/"))
		base.Params = nil
		q := u.Query()
		q.Del("parseTime")
		q.Del("loc")
		if q.Get("charset") == "" {
			q.Set("charset", "utf8mb4")
		}
		dsn := base.FormatDSN()
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		// the driver's parser routes options like timeout to their fields
		if cfg, err = mysqldriver.ParseDSN(dsn + sep + q.Encode()); err != nil {
			return nil, fmt.Errorf("invalid mysql url: %w", err)
		}
	case raw != "":
		if cfg, err = mysqldriver.ParseDSN(raw); err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
	default:
		cfg = newMySQLConfig(c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("mysql dsn missing database name")
	}
	cfg.ParseTime = true
	return cfg, nil
}

func newMySQLConfig(user, pass, host, port, dbName string) *mysqldriver.Config {
	if port == "" {
		port = "3306"
	}
	cfg := mysqldriver.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = dbName
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

// ConnectDatabase opens MySQL through gorm, logging slow queries through logger.
func ConnectDatabase(c Config, log *slog.Logger) (*gorm.DB, error) {
	dsnCfg, err := ResolveMySQLDSN(c)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(mysql.Open(dsnCfg.FormatDSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", "host", dsnCfg.Addr, "db", dsnCfg.DBName)
	return db, nil
}
