package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const productID = "-//archportal//booking-service//EN"

// Config параметры SMTP
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// sendFunc совпадает с сигнатурой smtp.SendMail
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer отправляет письма клиентам бюро
type Mailer struct {
	cfg  Config
	send sendFunc
	loc  *time.Location
	log  Logger
}

// New создает новый экземпляр отправителя. loc задаёт часовой пояс времени в тексте писем
func New(cfg Config, loc *time.Location, log Logger) *Mailer {
	if loc == nil {
		loc = time.UTC
	}
	return &Mailer{
		cfg:  cfg,
		send: smtp.SendMail,
		loc:  loc,
		log:  log,
	}
}

// Confirmation данные письма-подтверждения записи
type Confirmation struct {
	ToName    string
	ToEmail   string
	Title     string
	Notes     string
	Start     time.Time
	End       time.Time
	Organizer string
}

// Invitation данные письма-приглашения со ссылкой на запись
type Invitation struct {
	ToName    string
	ToEmail   string
	URL       string
	ExpiresAt time.Time
}

// SendConfirmation отправляет подтверждение записи с вложением .ics
func (m *Mailer) SendConfirmation(ctx context.Context, c Confirmation) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	attachment, err := BuildICS(c, time.Now())
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nyour appointment \"%s\" is confirmed for %s - %s.\r\n\r\nThe attached invite can be added to your calendar.\r\n",
		c.ToName, c.Title,
		c.Start.In(m.loc).Format("Mon, 02 Jan 2006 15:04"),
		c.End.In(m.loc).Format("15:04 MST"),
	)

	msg, err := m.buildMessage(c.ToEmail, "Appointment confirmed: "+c.Title, body, attachment)
	if err != nil {
		return err
	}

	return m.deliver(ctx, c.ToEmail, msg)
}

// SendInvitation отправляет ссылку на самостоятельную запись
func (m *Mailer) SendInvitation(ctx context.Context, inv Invitation) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nplease choose a time for your appointment:\r\n%s\r\n\r\nThe link is valid until %s and can be used once.\r\n",
		inv.ToName, inv.URL, inv.ExpiresAt.In(m.loc).Format("Mon, 02 Jan 2006 15:04 MST"),
	)

	msg, err := m.buildMessage(inv.ToEmail, "Book your appointment", body, nil)
	if err != nil {
		return err
	}

	return m.deliver(ctx, inv.ToEmail, msg)
}

func (m *Mailer) deliver(ctx context.Context, to string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	m.log.Info("Mail sent to %s", to)
	return nil
}

func (m *Mailer) buildMessage(to, subject, body string, ics []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", w.Boundary())

	text, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildMessage, err)
	}
	if _, err := text.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildMessage, err)
	}

	if ics != nil {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/calendar; charset=utf-8; method=REQUEST"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {`attachment; filename="invite.ics"`},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBuildMessage, err)
		}
		if _, err := part.Write([]byte(wrapBase64(ics))); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBuildMessage, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildMessage, err)
	}

	return buf.Bytes(), nil
}

// BuildICS собирает iCalendar приглашение для записи
func BuildICS(c Confirmation, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropMethod, "REQUEST")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, c.Start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, c.End.UTC())
	event.Props.SetText(ical.PropSummary, c.Title)
	if c.Notes != "" {
		event.Props.SetText(ical.PropDescription, c.Notes)
	}
	if c.Organizer != "" {
		organizer := ical.NewProp(ical.PropOrganizer)
		organizer.Value = "mailto:" + c.Organizer
		event.Props.Set(organizer)
	}
	attendee := ical.NewProp(ical.PropAttendee)
	attendee.Params.Set(ical.ParamCommonName, c.ToName)
	attendee.Value = "mailto:" + c.ToEmail
	event.Props.Set(attendee)

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%w: encode ics: %v", ErrBuildMessage, err)
	}

	return buf.Bytes(), nil
}

func wrapBase64(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var sb strings.Builder
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76])
		sb.WriteString("\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded)
	sb.WriteString("\r\n")
	return sb.String()
}
