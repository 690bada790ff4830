package model

// Setting keys. Each setting document is keyed by its name and holds {"list": [...]}.
const (
	SettingFormats        = "formats"
	SettingUnits          = "units"
	SettingPackTypes      = "packTypes"
	SettingLeadSources    = "leadSources"
	SettingLeadStatuses   = "leadStatuses"
	SettingTaskGroups     = "taskGroups"
	SettingVendorStatuses = "vendorStatuses"
)

// Settings maps a setting key to its ordered list of values.
type Settings map[string][]string

// List returns the values for key (nil when unset).
func (s Settings) List(key string) []string { return s[key] }

// First returns the first configured value for key, or fallback.
func (s Settings) First(key, fallback string) string {
	if l := s[key]; len(l) > 0 && l[0] != "" {
		return l[0]
	}
	return fallback
}

// DefaultSettings seeds an empty settings collection.
func DefaultSettings() Settings {
	return Settings{
		SettingFormats:        {"Powder", "Liquid", "Tablet", "Capsule", "Gummy", "Sachet"},
		SettingUnits:          {"g", "kg", "ml", "L", "pcs"},
		SettingPackTypes:      {"Jar", "Pouch", "Sachet", "Bottle", "Box"},
		SettingLeadSources:    {"LinkedIn", "Website", "Referral", "Cold Call"},
		SettingLeadStatuses:   {"Lead", "Active", "Negotiation", "Churned"},
		SettingTaskGroups:     {"Marketing", "Admin", "Website", "HR", "Operations"},
		SettingVendorStatuses: {"Active", "On Hold", "Potential", "Blacklisted"},
	}
}
