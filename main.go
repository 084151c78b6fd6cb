package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fahmibastari/cashflow-management/internal/config"
	"github.com/fahmibastari/cashflow-management/internal/database"
	"github.com/fahmibastari/cashflow-management/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// The signing secret has no hardcoded fallback. In release mode a
	// missing secret is a startup failure; in debug mode a random
	// per-process one keeps local development working (sessions won't
	// survive a restart).
	if cfg.JWT.Secret == "" {
		if cfg.Server.Mode == gin.ReleaseMode {
			log.Fatal("jwt.secret is not set; refusing to start in release mode (set CASHFLOW_JWT_SECRET)")
		}
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("generate dev jwt secret: %v", err)
		}
		cfg.JWT.Secret = hex.EncodeToString(b)
		log.Print("jwt.secret is not set, using a random per-process secret (debug mode only)")
	}

	// ensure the data directory exists
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
