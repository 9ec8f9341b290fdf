package mail

import "log/slog"

// Mailer delivers generated passwords to users. The core never inspects the
// result beyond the error; deployments substitute a real SMTP sender here.
type Mailer interface {
	SendNewPassword(firstName, password, email string) error
}

// LogMailer records the delivery in the structured log instead of sending.
// It is the default in development so registration works without an SMTP
// relay configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendNewPassword(firstName, password, email string) error {
	// The password itself stays out of the log line.
	m.logger.Info("password email queued", "recipient", email, "first_name", firstName)
	return nil
}
