package editor

import (
	"fmt"
	"time"

	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

// Editor entity names, used as URL segments and session keys.
const (
	EntityEncyclopedia = "encyclopedia"
	EntityAchievements = "achievements"
	EntityUsers        = "users"
)

// Definitions returns the editor definitions for the three admin screens.
func Definitions() map[string]Definition {
	return map[string]Definition{
		EntityEncyclopedia: encyclopediaDefinition(),
		EntityAchievements: achievementsDefinition(),
		EntityUsers:        usersDefinition(),
	}
}

func encyclopediaDefinition() Definition {
	return Definition{
		Collection: models.CollectionEncyclopedia,
		ScalarFields: []string{
			models.FieldMushroomName, models.FieldDescription, models.FieldEdibility,
			models.FieldReason, models.FieldToxicity, models.FieldOnset,
			models.FieldDuration, models.FieldLongTerm,
		},
		ListFields: []string{
			models.FieldCommonNames, models.FieldHabitats, models.FieldCulinaryUses,
			models.FieldMedicinalUses, models.FieldFunFacts, models.FieldImages,
		},
		SwitchField:       models.FieldEdibility,
		ActiveFields:      models.ActiveDetailFields,
		ConditionalFields: models.EdibilityDetailFields(),
		Defaults: func() models.Fields {
			return models.Fields{models.FieldCreatedAt: time.Now().Format(time.RFC3339)}
		},
		Validate: func(form FormState) error {
			for _, url := range form.Lists[models.FieldImages] {
				if url != "" {
					return nil
				}
			}
			return fmt.Errorf("at least one image is required")
		},
	}
}

func achievementsDefinition() Definition {
	return Definition{
		Collection:   models.CollectionAchievements,
		ScalarFields: []string{"category", "title", "description", "badgeImage"},
	}
}

func usersDefinition() Definition {
	return Definition{
		Collection:   models.CollectionUsers,
		ScalarFields: []string{models.FieldUsername, models.FieldEmail},
		Defaults: func() models.Fields {
			return models.Fields{
				models.FieldIsActive:  true,
				models.FieldCreatedAt: time.Now().Format(time.RFC3339),
			}
		},
	}
}
