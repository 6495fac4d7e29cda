package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Helsinki")
	if err != nil {
		panic(err)
	}
}

// the portal renders every timestamp as Helsinki wall-clock time no matter
// where our servers run, so date math must happen in this location
func Now() time.Time {
	return time.Now().In(Location)
}
