package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]

		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			switch fieldName {
			case "batch_size":
				return 50
			case "default_timeout_seconds":
				return 10
			case "max_log_files":
				return 200
			case "pacing_ms":
				return 500
			case "poll_ms":
				return 250
			case "progress_every":
				return 5
			default:
				return 0
			}
		}
	}

	if t.Kind() == reflect.String {
		switch fieldName {
		case "credentials":
			return "~/.frota/credenciais.json"
		case "driver":
			return DriverPlaywright
		case "login":
			return "manual"
		case "profile":
			return "~/.frota/portals.toml"
		case "report_dir":
			return "~/.frota/reports"
		case "stale_policy":
			return "verify"
		default:
			return "example"
		}
	}

	return nil
}
