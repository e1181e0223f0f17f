package config

import "errors"

func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.APIToken == "" {
		errs = append(errs, ErrAPITokenMissing)
	}
	if cfg.Workspace == nil || cfg.Workspace.Token == "" {
		errs = append(errs, ErrWorkspaceTokenMissing)
	}
	if cfg.Workspace == nil || cfg.Workspace.DatabaseID == "" {
		errs = append(errs, ErrWorkspaceDBMissing)
	}

	return errors.Join(errs...)
}
