package send_reminders

import "context"

type RemindersService interface {
	SendReminders(ctx context.Context, zone string) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
