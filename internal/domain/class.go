package domain

// A scheduled class meeting taken from the student's enrolled classes.
// StartTime is the registration system's "HHMM"-style begin time and sorts lexically.
type ClassMeeting struct {
	Title      string
	Building   string
	DaysTaught string
	StartTime  string
}
