package note

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/idempotency"
)

func TestTags(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		explicit []string
		want     []string
	}{
		{name: "no match", text: "quiet afternoon", want: []string{}},
		{name: "case insensitive", text: "Call MOM about the Dentist", want: []string{"health", "family"}},
		{name: "whole words only", text: "running payroll", want: []string{}},
		{name: "punctuation splits words", text: "budget: pay-rent!", want: []string{"finance"}},
		{name: "explicit tags appended and deduplicated", text: "client meeting", explicit: []string{"Work", "q3", " "}, want: []string{"work", "q3"}},
		{name: "rule order is stable", text: "idea for groceries store project", want: []string{"work", "errand", "idea"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tags(tt.text, tt.explicit))
		})
	}
}

func TestAppend(t *testing.T) {
	ctrl := gomock.NewController(t)
	sheet := domain.NewMockNoteSheet(ctrl)
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	svc := NewService(sheet, loc, nil)
	at := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

	gomock.InOrder(
		sheet.EXPECT().EnsureHeader(gomock.Any(), Header).Return(nil),
		sheet.EXPECT().AppendRow(gomock.Any(), []string{
			"2024-06-15T13:00:00-05:00",
			"Budget review",
			"Pay the invoice before Friday",
			"finance, home",
			"api",
		}).Return(nil),
	)

	resp, err := svc.Append(context.Background(), "", Note{
		Title: "Budget review",
		Body:  "Pay the invoice before Friday",
		Tags:  []string{"home"},
	}, at)
	require.NoError(t, err)

	assert.Equal(t, []string{"finance", "home"}, resp.Tags)
	assert.Equal(t, "api", resp.Source)
}

func TestAppendRequiresContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewService(domain.NewMockNoteSheet(ctrl), nil, nil)

	_, err := svc.Append(context.Background(), "", Note{Title: " "}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppendFailureReleasesKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	sheet := domain.NewMockNoteSheet(ctrl)
	ledger := domain.NewMockLedger(ctrl)
	svc := NewService(sheet, nil, idempotency.NewGuard(ledger, 0))
	sheetErr := errors.New("quota exceeded")

	gomock.InOrder(
		ledger.EXPECT().Claim(gomock.Any(), "idempotency:notes:n-1", gomock.Any()).Return(true, nil),
		sheet.EXPECT().EnsureHeader(gomock.Any(), gomock.Any()).Return(nil),
		sheet.EXPECT().AppendRow(gomock.Any(), gomock.Any()).Return(sheetErr),
		ledger.EXPECT().Release(gomock.Any(), "idempotency:notes:n-1").Return(nil),
	)

	_, err := svc.Append(context.Background(), "n-1", Note{Body: "remember this"}, time.Now())
	assert.ErrorIs(t, err, sheetErr)
}

func TestAppendWithoutSheet(t *testing.T) {
	svc := NewService(nil, nil, nil)

	_, err := svc.Append(context.Background(), "", Note{Title: "call bank"}, time.Now())
	assert.ErrorIs(t, err, ErrSheetDisabled)
}
