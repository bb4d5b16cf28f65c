package models

// Edibility classifies an encyclopedia entry and decides which detail fields
// the entry carries.
const (
	EdibilityEdible      = "edible"
	EdibilityEdibleW     = "ediblew" // edible with caution
	EdibilityInedible    = "inedible"
	EdibilityInedibleMed = "inediblemed" // inedible, medicinal
	EdibilityMedicinal   = "medicinal"
	EdibilityPoisonous   = "poisonous"
	EdibilityUnknown     = "unknown"
)

// Encyclopedia form fields. Base fields are present for every edibility;
// detail fields are activated by exactly one edibility group.
const (
	FieldMushroomName  = "mushroomName"
	FieldDescription   = "description"
	FieldCommonNames   = "commonNames"
	FieldHabitats      = "habitats"
	FieldFunFacts      = "funFacts"
	FieldEdibility     = "edibility"
	FieldImages        = "images"
	FieldReason        = "reason"
	FieldToxicity      = "toxicity"
	FieldOnset         = "onset"
	FieldDuration      = "duration"
	FieldLongTerm      = "longTerm"
	FieldCulinaryUses  = "culinaryUses"
	FieldMedicinalUses = "medicinalUses"
)

// edibilityGroups maps each edibility value to its active detail field set.
// Exactly one group is active per value.
var edibilityGroups = map[string][]string{
	EdibilityPoisonous:   {FieldReason, FieldToxicity, FieldOnset, FieldDuration, FieldLongTerm},
	EdibilityEdibleW:     {FieldReason, FieldCulinaryUses, FieldMedicinalUses},
	EdibilityInedible:    {FieldReason, FieldCulinaryUses, FieldMedicinalUses},
	EdibilityInedibleMed: {FieldReason, FieldCulinaryUses, FieldMedicinalUses},
	EdibilityEdible:      {FieldCulinaryUses, FieldMedicinalUses},
	EdibilityMedicinal:   {FieldCulinaryUses, FieldMedicinalUses},
	EdibilityUnknown:     {FieldCulinaryUses, FieldMedicinalUses},
}

// IsValidEdibility reports whether value is one of the seven edibility values.
func IsValidEdibility(value string) bool {
	_, ok := edibilityGroups[value]
	return ok
}

// ActiveDetailFields returns the detail fields activated by the given
// edibility value. Unrecognized values (including the empty string on a fresh
// form) activate the default group, matching the form's initial state.
func ActiveDetailFields(edibility string) []string {
	if group, ok := edibilityGroups[edibility]; ok {
		return group
	}
	return edibilityGroups[EdibilityUnknown]
}

// EdibilityDetailFields is the union of every group's fields, used by the
// editor to know which form fields are conditional at all.
func EdibilityDetailFields() []string {
	return []string{
		FieldReason, FieldToxicity, FieldOnset, FieldDuration,
		FieldLongTerm, FieldCulinaryUses, FieldMedicinalUses,
	}
}
