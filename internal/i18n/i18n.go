// Package i18n holds the user-facing labels of the dashboard.
package i18n

import "fmt"

var en = map[string]string{
	"app_title":          "claude-usage",
	"initializing":       "Loading usage data...",
	"terminal_too_small": "Terminal too small (need 80x24)",
	"current_size":       "Current: %dx%d",

	"tab_usage":    "Usage",
	"tab_windows":  "Billing Windows",
	"tab_sessions": "Sessions",

	"range_today": "Today",
	"range_week":  "Last 7 days",
	"range_month": "This month",
	"range_all":   "All time",

	"cost":          "Cost",
	"tokens":        "Tokens",
	"input":         "Input",
	"output":        "Output",
	"cache_create":  "Cache write",
	"cache_read":    "Cache read",
	"model":         "Model",
	"models":        "Models",
	"messages":      "Messages",
	"project":       "Project",
	"session":       "Session",
	"window":        "Window",
	"remaining":     "Remaining",
	"active":        "active",
	"no_data":       "No usage recorded in this range",
	"no_windows":    "No billing windows today",
	"no_sessions":   "No sessions today",
	"updated_at":    "Updated %s",
	"data_changed":  "Usage data changed",
	"models_header": "Per-model breakdown",

	"n_models":        "%d models",
	"n_windows":       "%d windows",
	"n_windows_live":  "● live · %d windows",
	"n_sessions_cost": "%d sessions · %s",
	"n_changes":       "%s (%d×)",
	"watching":        "● watching",
	"not_watching":    "○ snapshot",

	"help_title": "Keyboard shortcuts",
}

// T returns the label for key, or key itself when it has none.
func T(key string) string {
	if v, ok := en[key]; ok {
		return v
	}
	return key
}

// Tf returns a formatted label.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}
