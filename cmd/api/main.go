package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"craftmarket/internal/config"
	"craftmarket/internal/httpserver"
	"craftmarket/internal/logger"
	"craftmarket/internal/mail"
	"craftmarket/internal/models"
	"craftmarket/internal/storage"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Company{}, &models.Category{},
		&models.Tag{}, &models.Product{}, &models.Chat{}, &models.Message{},
		&models.Ticket{}, &models.Session{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedRoles(db, lg)

	store := storage.New(cfg.UploadDir)
	sweepOrphans(db, store, lg)

	mailer := mail.NewSMTP(cfg)
	router := httpserver.NewRouter(db, lg, cfg, mailer, store)
	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}

// Role ids are load-bearing: 1 = utilisateur, 2 = professionnel (owns a
// company), 3 = administrateur.
func seedRoles(db *gorm.DB, lg *zap.SugaredLogger) {
	for id, name := range map[uint]string{1: "utilisateur", 2: "professionnel", 3: "administrateur"} {
		role := models.Role{ID: id, Name: name}
		if err := db.FirstOrCreate(&role, models.Role{ID: id}).Error; err != nil {
			lg.Warnw("seed role", "id", id, "error", err)
		}
	}
}

// sweepOrphans garbage-collects upload files no row references. File writes
// and row commits are not atomic, so a crash can strand files in either
// direction; the sweep reconciles storage with the database at startup.
func sweepOrphans(db *gorm.DB, store *storage.Store, lg *zap.SugaredLogger) {
	buckets := []struct {
		name   string
		model  any
		column string
	}{
		{"users", &models.User{}, "picture_user"},
		{"companies", &models.Company{}, "picture_company"},
		{"products", &models.Product{}, "picture_product"},
	}
	for _, b := range buckets {
		var names []string
		if err := db.Model(b.model).Where(b.column + " <> ''").Pluck(b.column, &names).Error; err != nil {
			lg.Warnw("orphan sweep query", "bucket", b.name, "error", err)
			continue
		}
		referenced := make(map[string]bool, len(names))
		for _, n := range names {
			referenced[n] = true
		}
		removed, err := store.RemoveOrphans(b.name, func(name string) bool { return referenced[name] })
		if err != nil {
			lg.Warnw("orphan sweep", "bucket", b.name, "error", err)
		}
		if removed > 0 {
			lg.Infow("removed orphaned uploads", "bucket", b.name, "count", removed)
		}
	}
}
