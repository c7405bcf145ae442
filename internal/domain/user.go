package domain

// A student using the route finder. Goals are daily targets; zero means unset.
type User struct {
	ID          int64
	FirstName   string
	LastName    string
	StepGoal    int
	CalorieGoal int
	Token       string
}
