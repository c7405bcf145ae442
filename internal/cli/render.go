package cli

import (
	"campus-route-finder/internal/domain"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const title = `
  ____                _          _____ _           _
 |  _ \ ___  _   _ __| |_ ___   |  ___(_)_ __   __| | ___ _ __
 | |_) / _ \| | | |__  __/ _ \  | |_  | | '_ \ / _' |/ _ \ '__|
 |  _ < (_) | |_| | | ||  __/   |  _| | | | | | (_| |  __/ |
 |_| \_\___/ \__,_| |_| \___|   |_|   |_|_| |_|\__,_|\___|_|
`

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderRoutes(w io.Writer, routes []domain.Route) {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tWEEKDAY\tLOCATIONS\tMILES\tMINUTES\tSTEPS\tCALORIES")
	for i, r := range routes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%d\t%d\n",
			i, r.Weekday, strings.Join(r.LocationPath, " > "),
			r.TotalDistanceMiles, r.TotalTimeMinutes, r.DistanceSteps(), r.CaloriesBurned())
	}
	tw.Flush()
}

func renderSteps(w io.Writer, steps []domain.Step) {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tORDER\tWEEKDAY\tFROM\tTO\tMILES\tMINUTES")
	for i, s := range steps {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%.2f\t%.2f\n",
			i, s.Order, s.Weekday, s.StartLocation, s.EndLocation, s.DistanceMiles, s.DurationMinutes)
	}
	tw.Flush()
}

func renderGoals(w io.Writer, u domain.User) {
	tw := newTable(w)
	fmt.Fprintln(tw, "GOAL\tDAILY TARGET")
	fmt.Fprintf(tw, "Steps\t%d\n", u.StepGoal)
	fmt.Fprintf(tw, "Calories burned\t%d\n", u.CalorieGoal)
	tw.Flush()
}

func renderShortfalls(w io.Writer, shortfalls []domain.GoalShortfall) {
	for _, s := range shortfalls {
		fmt.Fprintf(w, "Warning: route %d doesn't meet your %s goal (%d of %d)\n", s.RouteIndex, s.Kind, s.Have, s.Want)
	}
}

func routeLabel(i int, r domain.Route) string {
	return fmt.Sprintf("%d: %s  %s  (%.2f mi)", i, r.Weekday, strings.Join(r.LocationPath, " > "), r.TotalDistanceMiles)
}
