package notify

import "context"

// EmailSender entrega un recordatorio por correo.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ChatSender entrega un recordatorio por el canal de mensajería, dirigido
// al teléfono ya normalizado del paciente.
type ChatSender interface {
	Send(ctx context.Context, to, text string) error
}
