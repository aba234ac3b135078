package notifier

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type StubSender struct {
	Sent []sentMail
	Err  error
}

func (s *StubSender) Send(to, subject, body string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
