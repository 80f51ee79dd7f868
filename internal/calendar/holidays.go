package calendar

import (
	"fmt"
	"time"
)

// builtinHolidays lists the public holidays of the production calendar,
// including bridge days moved by government decree.
var builtinHolidays = map[int][]string{
	2024: {
		"01.01.2024", "02.01.2024", "03.01.2024", "04.01.2024", "05.01.2024", "06.01.2024", "07.01.2024", "08.01.2024",
		"23.02.2024", "08.03.2024", "29.04.2024", "30.04.2024", "01.05.2024", "09.05.2024", "10.05.2024", "12.06.2024",
		"04.11.2024", "30.12.2024", "31.12.2024",
	},
	2025: {
		"01.01.2025", "02.01.2025", "03.01.2025", "04.01.2025", "05.01.2025", "06.01.2025", "07.01.2025", "08.01.2025",
		"23.02.2025", "08.03.2025", "08.05.2025", "01.05.2025", "02.05.2025", "09.05.2025", "12.06.2025", "13.06.2025",
		"03.11.2025", "04.11.2025", "31.12.2025",
	},
	2026: {
		"01.01.2026", "02.01.2026", "03.01.2026", "04.01.2026", "05.01.2026", "06.01.2026", "07.01.2026", "08.01.2026",
		"09.01.2026", "23.02.2026", "08.03.2026", "01.05.2026", "09.05.2026", "12.06.2026", "04.11.2026", "31.12.2026",
	},
}

var defaultCalendar = mustBuiltin()

func mustBuiltin() *Calendar {
	tables := make(map[int][]time.Time, len(builtinHolidays))
	for year, list := range builtinHolidays {
		days := make([]time.Time, 0, len(list))
		for _, s := range list {
			d, err := ParseDate(s)
			if err != nil {
				panic(fmt.Sprintf("calendar: bad builtin holiday %q: %v", s, err))
			}
			days = append(days, d)
		}
		tables[year] = days
	}
	return New(tables)
}
