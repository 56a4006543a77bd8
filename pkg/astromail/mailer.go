package astromail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

var (
	ErrNoRecipients = errors.New("no mail recipients configured")
)

// Config holds the SMTP settings for report delivery.
type Config struct {
	Enabled  bool   `env:"MAIL_ENABLED,false"`
	Host     string `env:"SMTP_HOST,localhost"`
	Port     int    `env:"SMTP_PORT,25"`
	User     string `env:"SMTP_USER,"`
	Password string `env:"SMTP_PASSWORD," encrypt:"true"` // sealed with ASTRO_KEY when set
	From     string `env:"MAIL_FROM,astrombr@localhost"`
	To       string `env:"MAIL_TO,"` // comma separated
}

// Recipients splits To into trimmed, non-empty addresses.
func (c Config) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(c.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// sender is the part of gomail.Dialer the mailer needs.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer delivers reports over SMTP.
type Mailer struct {
	cfg    Config
	sender sender
}

// NewMailer creates a Mailer dialing cfg.Host:cfg.Port.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// BuildMessage renders r into a plain-text message.
func (m *Mailer) BuildMessage(r Report) (*gomail.Message, error) {
	to := m.cfg.Recipients()
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", r.Subject())
	msg.SetDateHeader("Date", r.Generated)
	msg.SetBody("text/plain", r.Text())
	return msg, nil
}

// Send mails r. It does nothing when mail is disabled.
func (m *Mailer) Send(r Report) error {
	if !m.cfg.Enabled {
		log.Debug().Msg("mail disabled, report not sent")
		return nil
	}

	msg, err := m.BuildMessage(r)
	if err != nil {
		return err
	}
	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send report via %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}

	log.Info().
		Strs("to", m.cfg.Recipients()).
		Int("entries", len(r.Entries)).
		Msg("report mailed")
	return nil
}
