package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func sendHTML(to, subject, body string) error {
	config := emailConfigFromEnv()
	if config.Host == "" {
		// Mail is optional in local setups
		LogDebug("SMTP not configured, skipping email to %s: %s", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendConversionDecision notifies an organization of a conversion outcome.
// Best effort: callers log failures and carry on.
func SendConversionDecision(to string, amount float64, approved bool, reason string) error {
	subject := "Your ErthaExchange conversion request was approved"
	body := fmt.Sprintf(`
		<h2>Conversion request approved</h2>
		<p>Your request to convert <b>%.2f coins</b> has been approved.
		The amount will be transferred to your registered bank account.</p>
	`, amount)
	if !approved {
		subject = "Your ErthaExchange conversion request was rejected"
		body = fmt.Sprintf(`
			<h2>Conversion request rejected</h2>
			<p>Your request to convert <b>%.2f coins</b> was rejected.</p>
			<p>Reason: %s</p>
		`, amount, reason)
	}
	return sendHTML(to, subject, body)
}

// SendPaymentReceipt confirms a completed coin purchase.
func SendPaymentReceipt(to string, amount, balance float64, reference string) error {
	body := fmt.Sprintf(`
		<h2>Payment received</h2>
		<p>We added <b>%.2f coins</b> to your wallet.</p>
		<p>New balance: %.2f coins</p>
		<p>Reference: %s</p>
	`, amount, balance, reference)
	return sendHTML(to, "Your ErthaExchange coin purchase", body)
}
