// Package mail provides the good-morning mailer: the fixed message, the
// single-attempt send result, and the SMTP and Resend transports that deliver
// it.
package mail
