package domain

import "context"

//go:generate mockgen -source=note_sheet.go -destination=note_sheet_mock.go -package=domain

type NoteSheet interface {
	// EnsureHeader writes the header row when the sheet has none.
	EnsureHeader(ctx context.Context, header []string) error
	AppendRow(ctx context.Context, row []string) error
}
