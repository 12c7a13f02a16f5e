package main

import (
	"log"
	"os"

	"the-family-be/internal/constant"
	"the-family-be/internal/model"
	"the-family-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.UserRefreshToken{},
		&model.Member{},
		&model.SitDown{},
		&model.SitDownParticipant{},
		&model.Message{},
		&model.TypingIndicator{},
		&model.CommissionContact{},
		&model.CatalogModel{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Cyan("Step 3: Seeding model catalog...")
	seedCatalog(db)

	color.Cyan("Step 4: Seeding member templates...")
	seedTemplates(db)

	color.Green("Seeding complete.")
}

func seedCatalog(db *gorm.DB) {
	entries := []model.CatalogModel{
		{Provider: constant.ProviderClaude, Model: "claude-sonnet-4-20250514", Alias: "Claude Sonnet 4", Enabled: true},
		{Provider: constant.ProviderClaude, Model: "claude-3-5-haiku-20241022", Alias: "Claude Haiku 3.5", Enabled: true},
		{Provider: constant.ProviderOpenAI, Model: "gpt-4o", Alias: "GPT-4o", Enabled: true},
		{Provider: constant.ProviderOpenAI, Model: "gpt-4o-mini", Alias: "GPT-4o mini", Enabled: true},
		{Provider: constant.ProviderGemini, Model: "gemini-2.0-flash", Alias: "Gemini 2.0 Flash", Enabled: true},
		{Provider: constant.ProviderGemini, Model: "gemini-1.5-pro", Alias: "Gemini 1.5 Pro", Enabled: true},
	}

	for _, entry := range entries {
		var count int64
		db.Model(&model.CatalogModel{}).
			Where("provider = ? AND model = ?", entry.Provider, entry.Model).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&entry).Error; err != nil {
			color.Red("Failed to seed catalog entry %s/%s: %v", entry.Provider, entry.Model, err)
		} else {
			color.Green("Seeded catalog entry %s/%s", entry.Provider, entry.Model)
		}
	}
}

// seedTemplates writes the template personas as ownerless member rows the
// picker clones when a Don hires from a template.
func seedTemplates(db *gorm.DB) {
	var defaultModel model.CatalogModel
	if err := db.Where("enabled = ?", true).Order("provider ASC, model ASC").First(&defaultModel).Error; err != nil {
		color.Red("No enabled catalog entry, skipping template seed: %v", err)
		return
	}

	for _, tpl := range constant.MemberTemplates {
		slug := tpl.Slug
		var count int64
		db.Model(&model.Member{}).
			Where("is_template = ? AND template_slug = ?", true, slug).
			Count(&count)
		if count > 0 {
			continue
		}

		member := model.Member{
			Name:         tpl.Name,
			Provider:     defaultModel.Provider,
			Model:        defaultModel.Model,
			SystemPrompt: tpl.SystemPrompt,
			IsTemplate:   true,
			TemplateSlug: &slug,
		}
		if err := db.Create(&member).Error; err != nil {
			color.Red("Failed to seed template %s: %v", tpl.Slug, err)
		} else {
			color.Green("Seeded template %s", tpl.Slug)
		}
	}
}
