//go:build gcloud

package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2/google"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// newHTTPClient uses application default credentials. A key file is only
// read when credentialsFile is set.
func newHTTPClient(ctx context.Context, credentialsFile string) (*http.Client, error) {
	if credentialsFile != "" {
		slog.Warn("GOOGLE_CREDENTIALS_FILE is ignored on gcloud, using application default credentials")
	}

	client, err := google.DefaultClient(ctx, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create default credentials client: %w", err)
	}
	return client, nil
}
