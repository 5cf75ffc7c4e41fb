package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/config"
	userRepo "github.com/archportal/booking-service/internal/infra/storage/user"
	"github.com/archportal/booking-service/pkg/dbmetrics"
)

// admintoken выпускает Bearer токен администратора для защищённых маршрутов API
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	userID := flag.Int64("user-id", 0, "user id to put into the token (default: the admin from the database)")
	ttlHours := flag.Int("ttl", 0, "token lifetime in hours (default: auth.token_ttl_hours)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *userID == 0 {
		*userID, err = lookupAdmin(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to find admin user: %v\n", err)
			os.Exit(1)
		}
	}

	ttl := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	if *ttlHours > 0 {
		ttl = time.Duration(*ttlHours) * time.Hour
	}

	token, err := middleware.IssueToken([]byte(cfg.Auth.JWTSecret), *userID, ttl, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

func lookupAdmin(cfg *config.Config) (int64, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return 0, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := userRepo.NewRepository(dbmetrics.Wrap(db, nil)).GetAdmin(ctx)
	if err != nil {
		return 0, err
	}
	return admin.ID, nil
}
