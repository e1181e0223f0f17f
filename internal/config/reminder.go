package config

import "time"

const (
	reminderLeadMinutesEnv = "REMINDER_LEAD_MINUTES"

	defaultReminderLeadMinutes = 10
)

type ReminderConfig struct {
	Lead time.Duration
}

func LoadReminderConfig() (*ReminderConfig, error) {
	leadMinutes, err := positiveIntEnv(reminderLeadMinutesEnv, defaultReminderLeadMinutes)
	if err != nil {
		return nil, err
	}

	return &ReminderConfig{
		Lead: time.Duration(leadMinutes) * time.Minute,
	}, nil
}
