package dto

type StepResponse struct {
	Order           int     `json:"order"`
	Weekday         string  `json:"weekday"`
	StartLocation   string  `json:"start_location"`
	EndLocation     string  `json:"end_location"`
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

type RouteResponse struct {
	RouteID        string   `json:"route_id"`
	OwnerID        int64    `json:"owner_id"`
	Weekday        string   `json:"weekday"`
	Locations      []string `json:"locations"`
	DistanceMiles  float64  `json:"distance_miles"`
	TimeMinutes    float64  `json:"time_minutes"`
	DistanceSteps  int      `json:"distance_steps"`
	CaloriesBurned int      `json:"calories_burned"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type ListStepsResponse struct {
	RouteID string         `json:"route_id"`
	Steps   []StepResponse `json:"steps"`
}
