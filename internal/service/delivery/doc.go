// Package delivery sends rendered outreach emails and records every attempt.
//
// SendSingle runs the full per-contact flow: quota reservation, content
// resolution, rendering, the provider call, the email-log row and the
// contact/campaign bookkeeping. SendBatch composes SendSingle over a list of
// contacts, one at a time and paced, clamped to the caller's remaining
// quota.
//
// Provider implementations of Sender live in internal/mailer.
package delivery
