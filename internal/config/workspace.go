package config

import "os"

const (
	workspaceAPIURLEnv     = "WORKSPACE_API_URL"
	workspaceAPITokenEnv   = "WORKSPACE_API_TOKEN"
	workspaceDatabaseEnv   = "WORKSPACE_DATABASE_ID"
	workspaceAPIVersionEnv = "WORKSPACE_API_VERSION"

	defaultWorkspaceAPIURL     = "https://api.notion.com"
	defaultWorkspaceAPIVersion = "2022-06-28"
)

// PropertyNames maps item fields to the workspace property labels.
type PropertyNames struct {
	Name      string
	Status    string
	Category  string
	Priority  string
	Alignment string
	Do        string
	Due       string
	Related   string
}

type WorkspaceConfig struct {
	BaseURL    string
	Token      string
	DatabaseID string
	APIVersion string
	Properties PropertyNames
}

func DefaultPropertyNames() PropertyNames {
	return PropertyNames{
		Name:      "Name",
		Status:    "Status",
		Category:  "Type",
		Priority:  "Priority",
		Alignment: "Alignment",
		Do:        "Do Date",
		Due:       "Due Date",
		Related:   "Related",
	}
}

func LoadWorkspaceConfig() *WorkspaceConfig {
	defaults := DefaultPropertyNames()

	return &WorkspaceConfig{
		BaseURL:    getEnvOrDefault(workspaceAPIURLEnv, defaultWorkspaceAPIURL),
		Token:      os.Getenv(workspaceAPITokenEnv),
		DatabaseID: os.Getenv(workspaceDatabaseEnv),
		APIVersion: getEnvOrDefault(workspaceAPIVersionEnv, defaultWorkspaceAPIVersion),
		Properties: PropertyNames{
			Name:      getEnvOrDefault("WORKSPACE_PROP_NAME", defaults.Name),
			Status:    getEnvOrDefault("WORKSPACE_PROP_STATUS", defaults.Status),
			Category:  getEnvOrDefault("WORKSPACE_PROP_CATEGORY", defaults.Category),
			Priority:  getEnvOrDefault("WORKSPACE_PROP_PRIORITY", defaults.Priority),
			Alignment: getEnvOrDefault("WORKSPACE_PROP_ALIGNMENT", defaults.Alignment),
			Do:        getEnvOrDefault("WORKSPACE_PROP_DO", defaults.Do),
			Due:       getEnvOrDefault("WORKSPACE_PROP_DUE", defaults.Due),
			Related:   getEnvOrDefault("WORKSPACE_PROP_RELATED", defaults.Related),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
