// Seeds the encyclopedia collection from a YAML fixture. Idempotent: it does
// nothing when the collection already has documents.
//
// Usage:
//
//	go run ./scripts/seed-encyclopedia [fixture.yaml]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mycoscan/mycoscan-admin/pkg/config"
	"github.com/mycoscan/mycoscan-admin/pkg/database"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
)

type mushroomFixture struct {
	MushroomName  string   `yaml:"mushroomName"`
	Description   string   `yaml:"description"`
	Edibility     string   `yaml:"edibility"`
	Reason        string   `yaml:"reason"`
	Toxicity      string   `yaml:"toxicity"`
	Onset         string   `yaml:"onset"`
	Duration      string   `yaml:"duration"`
	LongTerm      string   `yaml:"longTerm"`
	CommonNames   []string `yaml:"commonNames"`
	Habitats      []string `yaml:"habitats"`
	CulinaryUses  []string `yaml:"culinaryUses"`
	MedicinalUses []string `yaml:"medicinalUses"`
	FunFacts      []string `yaml:"funFacts"`
	Images        []string `yaml:"images"`
}

type fixtureFile struct {
	Mushrooms []mushroomFixture `yaml:"mushrooms"`
}

func main() {
	path := "scripts/seed-encyclopedia/seed-data.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(path); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func run(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}

	var fixture fixtureFile
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(fixture.Mushrooms) == 0 {
		return fmt.Errorf("fixture %s contains no mushrooms", path)
	}

	cfg, err := config.Load("seed")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: 2,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	docRepo := repositories.NewDocumentRepository(db)

	existing, err := docRepo.List(ctx, models.CollectionEncyclopedia)
	if err != nil {
		return fmt.Errorf("failed to check existing encyclopedia: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Encyclopedia already has %d entries; nothing to do", len(existing))
		return nil
	}

	for _, m := range fixture.Mushrooms {
		if !models.IsValidEdibility(m.Edibility) {
			return fmt.Errorf("mushroom %q has invalid edibility %q", m.MushroomName, m.Edibility)
		}

		fields := models.Fields{
			models.FieldMushroomName:  m.MushroomName,
			models.FieldDescription:   m.Description,
			models.FieldEdibility:     m.Edibility,
			models.FieldCommonNames:   m.CommonNames,
			models.FieldHabitats:      m.Habitats,
			models.FieldCulinaryUses:  m.CulinaryUses,
			models.FieldMedicinalUses: m.MedicinalUses,
			models.FieldFunFacts:      m.FunFacts,
			models.FieldImages:        m.Images,
			models.FieldCreatedAt:     time.Now().Format(time.RFC3339),
		}
		// Only the detail fields of the active edibility group are stored.
		for _, pair := range []struct{ field, value string }{
			{models.FieldReason, m.Reason},
			{models.FieldToxicity, m.Toxicity},
			{models.FieldOnset, m.Onset},
			{models.FieldDuration, m.Duration},
			{models.FieldLongTerm, m.LongTerm},
		} {
			if pair.value != "" && contains(models.ActiveDetailFields(m.Edibility), pair.field) {
				fields[pair.field] = pair.value
			}
		}

		id, err := docRepo.Create(ctx, models.CollectionEncyclopedia, fields)
		if err != nil {
			return fmt.Errorf("failed to seed %q: %w", m.MushroomName, err)
		}
		log.Printf("Seeded %s (%s)", m.MushroomName, id)
	}

	log.Printf("Seeded %d encyclopedia entries", len(fixture.Mushrooms))
	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
