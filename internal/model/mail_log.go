package model

import "time"

// Estados de MailLog.
const (
	MailEnviado = "enviado"
	MailError   = "error"
)

// MailLog is an append-only audit record of every send attempt. A row is
// written regardless of whether delivery succeeded — email failures are
// swallowed so the originating request still returns success.
type MailLog struct {
	ID           uint   `gorm:"primaryKey"`
	Destinatario string `gorm:"not null"`
	Asunto       string `gorm:"not null"`
	Estado       string `gorm:"type:varchar(10);not null"`
	// Respuesta holds the SMTP error text on failure, or "ok" on success.
	Respuesta string
	Adjunto   *string
	CreatedAt time.Time
}

func (MailLog) TableName() string { return "mail_logs" }
