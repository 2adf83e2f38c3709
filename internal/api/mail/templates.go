package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var (
	welcomeHTML = template.Must(template.New("welcome").Parse(`<h2>Welcome to Matrix, {{.Name}}!</h2>
<p>Your account <strong>@{{.Username}}</strong> is ready. Follow people, save posts and make yourself at home.</p>`))

	otpHTML = template.Must(template.New("otp").Parse(`<h2>Password reset</h2>
<p>Use this code to reset your password:</p>
<p style="font-size:28px;letter-spacing:6px"><strong>{{.Code}}</strong></p>
<p>The code expires in {{.Minutes}} minutes. If you did not ask for it you can ignore this email.</p>`))

	passwordChangedHTML = template.Must(template.New("password_changed").Parse(`<h2>Your password was changed</h2>
<p>Hi {{.Name}}, the password for <strong>@{{.Username}}</strong> was reset just now.
If this wasn't you, reset it again straight away.</p>`))
)

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Templates are static and data is plain strings.
		return ""
	}
	return buf.String()
}

// WelcomeMessage greets a newly created account.
func WelcomeMessage(to, name, username string) Message {
	data := struct{ Name, Username string }{name, username}
	return Message{
		To:      to,
		Subject: "Welcome to Matrix",
		Text:    fmt.Sprintf("Welcome to Matrix, %s! Your account @%s is ready.", name, username),
		HTML:    render(welcomeHTML, data),
	}
}

// OTPMessage carries a password reset code valid for ttl.
func OTPMessage(to, code string, ttl time.Duration) Message {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	data := struct {
		Code    string
		Minutes int
	}{code, minutes}
	return Message{
		To:      to,
		Subject: "MATRIX OTP",
		Text:    fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.", code, minutes),
		HTML:    render(otpHTML, data),
	}
}

// PasswordChangedMessage confirms a completed password reset.
func PasswordChangedMessage(to, name, username string) Message {
	data := struct{ Name, Username string }{name, username}
	return Message{
		To:      to,
		Subject: "Your Matrix password was changed",
		Text:    fmt.Sprintf("Hi %s, the password for @%s was reset.", name, username),
		HTML:    render(passwordChangedHTML, data),
	}
}
