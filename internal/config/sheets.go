package config

import "os"

const (
	sheetsSpreadsheetIDEnv = "SHEETS_SPREADSHEET_ID"
	sheetsNotesRangeEnv    = "SHEETS_NOTES_RANGE"
	googleCredentialsEnv   = "GOOGLE_CREDENTIALS_FILE"

	defaultSheetsNotesRange = "Notes!A:E"
)

// SheetsConfig configures the notes spreadsheet. An empty SpreadsheetID
// disables the notes endpoint.
type SheetsConfig struct {
	SpreadsheetID   string
	NotesRange      string
	CredentialsFile string
}

func LoadSheetsConfig() *SheetsConfig {
	return &SheetsConfig{
		SpreadsheetID:   os.Getenv(sheetsSpreadsheetIDEnv),
		NotesRange:      getEnvOrDefault(sheetsNotesRangeEnv, defaultSheetsNotesRange),
		CredentialsFile: os.Getenv(googleCredentialsEnv),
	}
}

func (c *SheetsConfig) Enabled() bool {
	return c != nil && c.SpreadsheetID != ""
}
