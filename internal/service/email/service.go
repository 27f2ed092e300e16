package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"campus-booking/internal/domain"
)

type Service interface {
	SendBookingApproved(ctx context.Context, to *domain.User, booking *domain.Booking, resource *domain.Resource) error
	SendBookingRejected(ctx context.Context, to *domain.User, booking *domain.Booking, resource *domain.Resource, reason string) error
}

type service struct {
	client *resend.Client
	from   string
}

func NewService(apiKey, from string) Service {
	return &service{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

var decisionTemplate = template.Must(template.New("decision").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Booking {{.Outcome}}</h2>
	<p>Hello {{.Name}},</p>
	<p>Your booking for <strong>{{.Resource}}</strong> on {{.Date}} ({{.Start}} - {{.End}}) has been <strong>{{.Outcome}}</strong>.</p>
	{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
	<p>Campus Resource Booking</p>
</div>
`))

type decisionData struct {
	Name     string
	Resource string
	Date     string
	Start    string
	End      string
	Outcome  string
	Reason   string
}

func (s *service) SendBookingApproved(ctx context.Context, to *domain.User, booking *domain.Booking, resource *domain.Resource) error {
	return s.sendDecision(ctx, to, booking, resource, "APPROVED", "")
}

func (s *service) SendBookingRejected(ctx context.Context, to *domain.User, booking *domain.Booking, resource *domain.Resource, reason string) error {
	return s.sendDecision(ctx, to, booking, resource, "REJECTED", reason)
}

func (s *service) sendDecision(ctx context.Context, to *domain.User, booking *domain.Booking, resource *domain.Resource, outcome, reason string) error {
	var body bytes.Buffer
	err := decisionTemplate.Execute(&body, decisionData{
		Name:     to.FullName,
		Resource: resource.Name,
		Date:     booking.BookingDate.Format("2006-01-02"),
		Start:    booking.StartTime,
		End:      booking.EndTime,
		Outcome:  outcome,
		Reason:   reason,
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Campus Booking <%s>", s.from),
		To:      []string{to.Email},
		Subject: fmt.Sprintf("Booking %s: %s", outcome, resource.Name),
		Html:    body.String(),
	}

	_, err = s.client.Emails.Send(params)
	return err
}
