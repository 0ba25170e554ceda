package alabintro

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/hlop3z/alabintro/internal/introspect"
	"github.com/hlop3z/alabintro/internal/metadata"
	"github.com/hlop3z/alabintro/internal/sqlschema"
)

// Client pulls the data model of one database. Create it with New and
// release it with Close:
//
//	client, err := alabintro.New(
//	    alabintro.WithDatabaseURL("postgres://localhost/mydb"),
//	    alabintro.WithMetadataFile("alabintro.meta.json"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	result, err := client.Pull(ctx)
type Client struct {
	db       *sql.DB
	dialect  string
	joinMode sqlschema.JoinTableMode
	config   *Config
	reader   introspect.Introspector
}

// New connects to the database named by WithDatabaseURL. The dialect is
// detected from the URL unless WithDialect is given.
func New(opts ...Option) (*Client, error) {
	cfg := &Config{
		Timeout:      30 * time.Second,
		MetadataFile: metadata.DefaultFile,
		Concurrency:  4,
		Logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	joinMode, ok := sqlschema.ParseJoinTableMode(cfg.JoinTables)
	if !ok {
		return nil, fmt.Errorf("alabintro: invalid join table mode %q (allowed: %s)",
			cfg.JoinTables, strings.Join(sqlschema.JoinTableModes, ", "))
	}

	dialect := cfg.Dialect
	if dialect == "" {
		dialect = detectDialect(cfg.DatabaseURL)
	}
	if !slices.Contains(introspect.Dialects, dialect) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, dialect)
	}

	db, err := connect(cfg, dialect)
	if err != nil {
		return nil, &ConnectionError{URL: redactURL(cfg.DatabaseURL), Dialect: dialect, Cause: err}
	}
	reader, err := introspect.New(db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}

	cfg.Logger.Debug("connected", "dialect", dialect, "url", redactURL(cfg.DatabaseURL))
	return &Client{db: db, dialect: dialect, joinMode: joinMode, config: cfg, reader: reader}, nil
}

// connect opens a pool sized for the introspection fan-out and pings it.
func connect(cfg *Config, dialect string) (*sql.DB, error) {
	driver, dsn := "postgres", cfg.DatabaseURL
	if dialect == introspect.DialectSQLite {
		driver, dsn = "sqlite", convertSQLiteURL(dsn)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if dialect == introspect.DialectSQLite {
		// PRAGMA reads and in-memory databases are per connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Concurrency + 1)
		db.SetMaxIdleConns(cfg.Concurrency)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Client) DB() *sql.DB { return c.db }
func (c *Client) Dialect() string { return c.dialect }
func (c *Client) Config() Config { return *c.config }

// detectDialect maps postgres:// and postgresql:// URLs to postgres and
// sqlite://, sqlite3://, file: or a .db/.sqlite/.sqlite3 path to sqlite.
// Anything else is assumed to be a postgres DSN.
func detectDialect(url string) string {
	lower := strings.ToLower(url)
	for _, prefix := range []string{"sqlite://", "sqlite3://", "file:"} {
		if strings.HasPrefix(lower, prefix) {
			return introspect.DialectSQLite
		}
	}
	for _, suffix := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(lower, suffix) {
			return introspect.DialectSQLite
		}
	}
	return introspect.DialectPostgres
}

// convertSQLiteURL strips the URL scheme, leaving the path and any query
// parameters for the driver.
func convertSQLiteURL(url string) string {
	for _, prefix := range []string{"sqlite://", "sqlite3://", "file:"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return rest
		}
	}
	return url
}

// redactURL masks the password of a URL's userinfo for logs and errors.
func redactURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return url
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return url
	}
	return scheme + "://" + user + ":***@" + host
}
