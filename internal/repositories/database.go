package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/uandc/arena-market/internal/config"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Repositories bundles every store behind one database handle.
type Repositories struct {
	DB *sql.DB

	User         UserRepository
	Product      ProductRepository
	Cart         CartRepository
	Wishlist     WishlistRepository
	Order        OrderRepository
	Review       ReviewRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:           db,
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Cart:         NewCartRepo(db),
		Wishlist:     NewWishlistRepo(db),
		Order:        NewOrderRepo(db),
		Review:       NewReviewRepo(db),
		Notification: NewNotificationRepo(db),
	}, nil
}

// Migrate applies pending schema migrations from the configured directory.
func Migrate(cfg *config.Config) error {

	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
