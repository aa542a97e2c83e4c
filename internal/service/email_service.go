package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"trackclash/internal/game"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. When enabled is false or
// fromEmail is empty the service is disabled and every send becomes a
// logged no-op.
func NewEmailService(enabled bool, awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if !enabled || fromEmail == "" {
		log.Println("Email service disabled: set EMAIL_ENABLED and EMAIL_FROM to enable")
		return &EmailService{enabled: false}, nil
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
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to new users
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to TrackClash!"
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
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Welcome to TrackClash!</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Thank you for creating your TrackClash account! Pick any chart week in history, listen to the previews, and see how many hits you can name.</p>
			<p>Here's what you can do next:</p>
			<ul>
				<li>Play a classic game from the week you were born</li>
				<li>Try quick play across a whole decade</li>
				<li>Climb the leaderboard</li>
			</ul>
			<p style="text-align: center;">
				<a href="%s/login" class="button">Start Playing</a>
			</p>
		</div>
		<div class="footer">
			<p>This is an automated email from TrackClash. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Thank you for creating your TrackClash account! Pick any chart week in history, listen to the previews, and see how many hits you can name.

Here's what you can do next:
- Play a classic game from the week you were born
- Try quick play across a whole decade
- Climb the leaderboard

Start playing: %s/login

---
This is an automated email from TrackClash. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendGameSummaryEmail sends the end-of-game recap with the final score and
// each question's outcome
func (s *EmailService) SendGameSummaryEmail(ctx context.Context, toEmail, toName string, summary game.Summary, rounds []game.RoundRecord) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): game summary to %s", toEmail)
		return nil
	}

	verdict := "Better luck next time!"
	if summary.Win {
		verdict = "You won!"
	}

	subject := fmt.Sprintf("Your TrackClash result: %d points", summary.TotalPoints)

	rowsHTML := ""
	rowsText := ""
	for i, r := range rounds {
		mark := "x"
		if r.IsCorrect {
			mark = "ok"
		}
		if r.Skipped {
			mark = "skip"
		}
		rowsHTML += fmt.Sprintf("<tr><td>%d</td><td>%s</td><td>%s</td><td>%d</td></tr>\n", i+1, mark, r.CorrectLabel, r.Points)
		rowsText += fmt.Sprintf("%2d. [%s] %s (%d points)\n", i+1, mark, r.CorrectLabel, r.Points)
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
		td, th { padding: 6px; border-bottom: 1px solid #ddd; text-align: left; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>%s You scored <strong>%d points</strong> with <strong>%d of %d</strong> correct.</p>
			<table>
				<tr><th>#</th><th></th><th>Track</th><th>Points</th></tr>
				%s
			</table>
		</div>
		<div class="footer">
			<p>This is an automated email from TrackClash. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, verdict, toName, verdict, summary.TotalPoints, summary.CorrectCount, len(rounds), rowsHTML)

	textBody := fmt.Sprintf(`Hi %s,

%s You scored %d points with %d of %d correct.

%s
---
This is an automated email from TrackClash. Please do not reply.
`, toName, verdict, summary.TotalPoints, summary.CorrectCount, len(rounds), rowsText)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
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

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
