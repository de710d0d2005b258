package service

import "net/smtp"

type EmailService interface{ Send(to, subject, body string) error }

type smtpEmail struct {
	host, port, from string
}

func NewEmailService(host, port, from string) EmailService {
	return &smtpEmail{host: host, port: port, from: from}
}

func (s *smtpEmail) Send(to, subject, body string) error {
	addr := s.host + ":" + s.port

	msg := "From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	// no auth: local relay / MailHog
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
