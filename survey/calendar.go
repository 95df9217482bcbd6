package survey

import "math/rand"

// Calendar is one participant's week: Calendar[day][slot] is 1 when free.
type Calendar [][]int

// Free counts the available slots.
func (c Calendar) Free() int {
	n := 0
	for _, day := range c {
		for _, v := range day {
			n += v
		}
	}
	return n
}

// Calendars draws one week per participant. Every cell is its own Bernoulli
// trial whose odds depend only on the slot and whether the day is a weekday.
func Calendars(r *rand.Rand, n int, cp CalendarParams) ([]Calendar, error) {
	if err := checkCount("count", n); err != nil {
		return nil, err
	}
	if err := cp.validate(); err != nil {
		return nil, err
	}
	out := make([]Calendar, n)
	for i := range out {
		week := make(Calendar, cp.Days)
		for d := range week {
			odds := cp.WeekendProb
			if d < cp.Weekdays {
				odds = cp.WeekdayProb
			}
			day := make([]int, cp.Slots)
			for s, p := range odds {
				if r.Float64() < p {
					day[s] = 1
				}
			}
			week[d] = day
		}
		out[i] = week
	}
	return out, nil
}
