package event_bus

const (
	// PaymentScheduled is published after a payment has been validated,
	// appended, and durably persisted.
	PaymentScheduled EventType = "payment.scheduled"
	// PaymentDue is published by the reminder job for every payment whose
	// schedule falls on the current date.
	PaymentDue EventType = "payment.due"
	// TransferCreated is published after a money transfer has been recorded.
	TransferCreated EventType = "transfer.created"
)

type PaymentScheduledEvent struct {
	UID      string
	Title    string
	Amount   string
	Date     string
	Category string
}

type PaymentDueEvent struct {
	UserId   int
	UID      string
	Title    string
	Amount   string
	Date     string
	Category string
}

type TransferCreatedEvent struct {
	Id           int
	Counterparty string
	Amount       string
}
