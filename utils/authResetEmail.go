package utils

import (
	"DentaBill/config"

	"gopkg.in/gomail.v2"
)

// SendResetCodeEmail emails the 6-digit password reset code.
func SendResetCodeEmail(cfg config.SMTPConfig, email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.User)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "DentaBill Password Reset Code")

	m.SetBody("text/plain", "Your password reset code is: "+code)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Password Reset Code</title>
		<style>
			body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
			.container { background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px; }
			.code { font-weight: bold; font-size: 20px; color: #3f51b5; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Password Reset Code</h1>
			<p>Your DentaBill password reset code is:</p>
			<p class="code">` + code + `</p>
			<p>The code expires in 15 minutes. If you did not request a password reset, please ignore this email.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	return d.DialAndSend(m)
}
