package services

import "log"

// LogSMSSender is the default SMSSender: it logs outbound messages instead of
// delivering them. Deployments with a gateway swap in their own SMSSender.
type LogSMSSender struct{}

func (LogSMSSender) Available() bool { return true }

func (LogSMSSender) Send(phoneNumber, message string) error {
	log.Printf("sms to %s: %s", phoneNumber, message)
	return nil
}
