package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer is the transactional-email surface handlers depend on.
type Mailer interface {
	SendOTPEmail(toEmail, code string) error
	SendPasswordResetEmail(toEmail, token string) error
	SendNewsletterWelcomeEmail(toEmail string) error
	SendContactAckEmail(toEmail, name string) error
	SendOrderConfirmationEmail(toEmail, invoiceNo string, totalAmount float64, paymentMethod string) error
}

// EmailService sends transactional email through SendGrid.
type EmailService struct {
	client  *sendgrid.Client
	sender  string
	baseURL string
}

// NewEmailService builds an EmailService with the configured API key, sender
// address and public base URL (used in emailed links).
func NewEmailService(apiKey, sender, baseURL string) *EmailService {
	return &EmailService{
		client:  sendgrid.NewSendClient(apiKey),
		sender:  sender,
		baseURL: baseURL,
	}
}

// SendEmail sends a single HTML email to the given recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	from := mail.NewEmail("BlushBelle", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("email provider rejected message: status %d", resp.StatusCode)
	}
	return nil
}

// SendOTPEmail delivers a one-time login code.
func (es *EmailService) SendOTPEmail(toEmail, code string) error {
	subject := "Your BlushBelle Login Code"
	htmlContent := fmt.Sprintf(
		"<strong>Your one-time login code is %s.</strong><br>It expires in %d minutes. If you did not request this, you can ignore this email.",
		code, int(OTPValidity.Minutes()),
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendPasswordResetEmail delivers a reset link embedding the opaque token.
func (es *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	subject := "Reset Your BlushBelle Password"
	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", es.baseURL, token)
	htmlContent := fmt.Sprintf(
		"<strong>We received a request to reset your password.</strong> <a href=\"%s\">Reset Password</a><br>If you did not request this, you can ignore this email.",
		resetLink,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendNewsletterWelcomeEmail acknowledges a newsletter subscription.
func (es *EmailService) SendNewsletterWelcomeEmail(toEmail string) error {
	subject := "Welcome to the BlushBelle Newsletter"
	htmlContent := "<strong>Thanks for subscribing!</strong><br>You will now be the first to hear about new products and offers."
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendContactAckEmail acknowledges a contact-form submission.
func (es *EmailService) SendContactAckEmail(toEmail, name string) error {
	subject := "We Received Your Message"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thanks for reaching out. Our team will get back to you within one business day.",
		name,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderConfirmationEmail confirms a placed order.
func (es *EmailService) SendOrderConfirmationEmail(toEmail, invoiceNo string, totalAmount float64, paymentMethod string) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your purchase!</strong><br><br>Your order (Invoice: %s) has been placed successfully.<br>Total Amount: <strong>$%.2f</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping with us!",
		invoiceNo, totalAmount, paymentMethod,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
