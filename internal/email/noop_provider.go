package email

import "ustahub_backend/internal/logger"

// NoopProvider logs instead of sending. Used when SMTP is not configured
// and in tests.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Validate() error { return nil }

func (p *NoopProvider) Send(email *Email) error {
	logger.Debug("email suppressed", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *NoopProvider) SendInvitationReceived(to, customerName string) error {
	return p.Send(&Email{To: []string{to}, Subject: "You have a new invitation"})
}

func (p *NoopProvider) SendContractOffer(to, jobTitle string) error {
	return p.Send(&Email{To: []string{to}, Subject: "New contract offer"})
}

func (p *NoopProvider) SendPasswordReset(to, token string) error {
	return p.Send(&Email{To: []string{to}, Subject: "Password reset"})
}
