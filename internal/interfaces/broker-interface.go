package interfaces

type ConsumerHandler interface {
	HandleMessage(key, value []byte) error
}

type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

// Mailer delivers the out-of-band notifications triggered by the auth
// flow. The plaintext code/link only ever travels through here.
type Mailer interface {
	SendOTPEmail(to, code string) error
	SendResetEmail(to, link string) error
}
