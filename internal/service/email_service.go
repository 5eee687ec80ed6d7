package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ProfileSummary is one kid's line in the weekly progress email
type ProfileSummary struct {
	Username         string
	QuizAttempts     int
	QuizzesPassed    int
	EarnedMinutes    int
	UsedMinutes      int
	RemainingMinutes int
}

// EmailService sends parent-facing emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service. With no from address
// configured the service is created disabled and every send is a no-op.
func NewEmailService(awsRegion, fromEmail, fromName string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWeeklySummary emails the parent a progress report covering the
// last week: quizzes taken and passed per kid, plus the current
// screen-time balance
func (s *EmailService) SendWeeklySummary(ctx context.Context, toEmail string, weekEnding time.Time, summaries []ProfileSummary) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly summary to %s", toEmail)
		return nil
	}
	if toEmail == "" {
		log.Println("Skipping weekly summary: no parent email configured")
		return nil
	}

	subject := fmt.Sprintf("TymonTeam weekly progress - %s", weekEnding.Format("Jan 2, 2006"))

	var rows, lines strings.Builder
	for _, sum := range summaries {
		fmt.Fprintf(&rows, `
			<tr>
				<td>%s</td>
				<td style="text-align: center;">%d</td>
				<td style="text-align: center;">%d</td>
				<td style="text-align: center;">%d min</td>
			</tr>`,
			sum.Username, sum.QuizAttempts, sum.QuizzesPassed, sum.RemainingMinutes)
		fmt.Fprintf(&lines, "- %s: %d quizzes taken, %d passed, %d min of game time left\n",
			sum.Username, sum.QuizAttempts, sum.QuizzesPassed, sum.RemainingMinutes)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		table { width: 100%%; border-collapse: collapse; }
		th, td { padding: 8px; border-bottom: 1px solid #ddd; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Weekly Progress</h1>
		</div>
		<div class="content">
			<p>Here is how the kids did in the week ending %s:</p>
			<table>
				<tr><th>Kid</th><th>Quizzes</th><th>Passed</th><th>Game time left</th></tr>%s
			</table>
		</div>
		<div class="footer">
			<p>This is an automated email from TymonTeam. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, weekEnding.Format("January 2, 2006"), rows.String())

	textBody := fmt.Sprintf(`Weekly progress for the week ending %s:

%s
---
This is an automated email from TymonTeam. Please do not reply.
`, weekEnding.Format("January 2, 2006"), lines.String())

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] Sending email: from=%s, to=%s, subject=%s", fromAddress, toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
