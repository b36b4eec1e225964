package storage

import (
	"fmt"
	"strings"
	"time"

	"nagios-autothreshold/src/models"
)

// unreachableState is the NDOUtils service state excluded from analysis
// (3 = UNKNOWN).
const unreachableState = 3

// placeholderFunc renders the n-th (1-based) bind parameter.
type placeholderFunc func(n int) string

func dollarPlaceholder(n int) string   { return fmt.Sprintf("$%d", n) }
func questionPlaceholder(_ int) string { return "?" }

// -----------------------------------------------------------------------------

// sampleQuery renders the check-result query for q. Table names are built
// from the validated prefix; every filter value is a bind parameter. Time
// arguments are passed through timeArg so each driver gets its own format.
func sampleQuery(
	prefix string,
	q models.MSampleQuery,
	ph placeholderFunc,
	timeArg func(time.Time) any,
) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 8)
	bind := func(v any) string {
		args = append(args, v)
		return ph(len(args))
	}

	fmt.Fprintf(&b, "SELECT c.start_time, c.perfdata FROM %sservicechecks c", prefix)
	fmt.Fprintf(&b, " JOIN %sservices s ON s.service_object_id = c.service_object_id", prefix)
	fmt.Fprintf(&b, " JOIN %shosts h ON h.host_object_id = s.host_object_id", prefix)

	fmt.Fprintf(&b, " WHERE h.display_name = %s", bind(q.HostName))
	fmt.Fprintf(&b, " AND s.display_name = %s", bind(q.ServiceName))
	if q.ServicePattern != "" {
		fmt.Fprintf(&b, " AND s.display_name LIKE %s", bind(q.ServicePattern))
	}
	fmt.Fprintf(&b, " AND c.state <> %s", bind(unreachableState))
	b.WriteString(" AND c.perfdata IS NOT NULL")
	fmt.Fprintf(&b, " AND c.start_time >= %s", bind(timeArg(q.Window.Start)))
	fmt.Fprintf(&b, " AND c.start_time < %s", bind(timeArg(q.Window.End)))

	occurrences := q.Occurrences()
	if len(occurrences) == 0 {
		// Nothing can match; keep the statement valid.
		b.WriteString(" AND 1 = 0")
	} else {
		b.WriteString(" AND (")
		for i, o := range occurrences {
			if i > 0 {
				b.WriteString(" OR ")
			}
			fmt.Fprintf(&b, "(c.start_time >= %s AND c.start_time < %s)",
				bind(timeArg(o.Start)), bind(timeArg(o.End)))
		}
		b.WriteString(")")
	}

	b.WriteString(" ORDER BY c.start_time ASC")
	return b.String(), args
}

// -----------------------------------------------------------------------------

// wallClock reinterprets t's wall-clock fields in loc. Drivers return
// timestamp-without-time-zone columns in UTC or a fixed zone.
func wallClock(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
