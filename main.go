package main

import (
	"flag"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/config"
	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/router"
	"github.com/yeremiapane/resteasy/utils"
)

func main() {
	configFile := flag.String("c", "", "dotenv configuration file (default ./.env)")
	flag.Parse()

	utils.InitLogger()

	var files []string
	if *configFile != "" {
		files = append(files, *configFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load configuration: %v", err)
	}
	utils.SetLevel(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if cfg.SeedFile != "" {
		if _, err := database.ExecuteSQLFile(db, cfg.SeedFile); err != nil {
			utils.ErrorLogger.Printf("Error running seed file %s: %v", cfg.SeedFile, err)
		}
	}

	r := router.SetupRouter(database.NewStore(db), cfg)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
