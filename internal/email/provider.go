package email

// Email is a single outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// Provider sends transactional mail. The engagement flows call the
// convenience methods; Send is the raw escape hatch.
type Provider interface {
	Send(email *Email) error

	SendInvitationReceived(to, customerName string) error
	SendContractOffer(to, jobTitle string) error
	SendPasswordReset(to, token string) error

	Validate() error
}
