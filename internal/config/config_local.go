//go:build !gcloud

package config

// Validate accepts an empty PRIMIND_TASKS_URL, which disables reminder
// scheduling locally.
func (c *TaskQueueConfig) Validate() error {
	return nil
}

func (c *SheetsConfig) Validate() error {
	if c.Enabled() && c.CredentialsFile == "" {
		return ErrSheetsCredentialsUnset
	}
	return nil
}
