package auth

// Mailer puerto de correo transaccional del onboarding. La implementación SMTP
// vive en infraestructura; los casos de uso no conocen el proveedor.
type Mailer interface {
	SendVerification(to, name, verifyURL string) error
	SendAccountApproved(to, name string) error
	SendAccountRejected(to, name, reason string) error
}
