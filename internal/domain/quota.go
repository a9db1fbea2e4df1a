package domain

// DefaultDailyLimit applies when a user has no quota record for the day.
const DefaultDailyLimit = 20

// QuotaDateLayout formats the calendar-day key of a quota record.
const QuotaDateLayout = "2006-01-02"

// DailyQuota is the per-(user, day) send counter. Date is a calendar-day
// string so equality is exact.
type DailyQuota struct {
	UserID     string `json:"userId" db:"user_id"`
	Date       string `json:"date" db:"date"`
	EmailsSent int    `json:"emailsSent" db:"emails_sent"`
	DailyLimit int    `json:"dailyLimit" db:"daily_limit"`
}

// QuotaStatus is what a caller sees of today's quota.
type QuotaStatus struct {
	Remaining int `json:"remaining"`
	Sent      int `json:"sent"`
	Limit     int `json:"limit"`
}

// Status derives the caller view of a record. Remaining never goes negative.
func (q *DailyQuota) Status() QuotaStatus {
	remaining := q.DailyLimit - q.EmailsSent
	if remaining < 0 {
		remaining = 0
	}
	return QuotaStatus{Remaining: remaining, Sent: q.EmailsSent, Limit: q.DailyLimit}
}
