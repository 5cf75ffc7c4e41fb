package domain

import "time"

// GenerateSlots перебирает дни периода и для каждого рабочего диапазона дня выдаёт слоты
// длительностью durationMinutes с шагом stepMinutes, начиная с начала диапазона.
// Слот попадает в результат, если его конец не выходит за конец диапазона (slotEnd <= rangeEnd)
// и начало строго позже now.
// Порядок: день → диапазон → время. Некорректные диапазоны дают ноль слотов
func GenerateSlots(
	hours WeeklyHours,
	startDay, endDay time.Time,
	durationMinutes, stepMinutes int,
	now time.Time,
) []CandidateSlot {
	slots := make([]CandidateSlot, 0)
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return slots
	}

	duration := time.Duration(durationMinutes) * time.Minute

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		seen := make(map[int]struct{})

		for _, r := range hours.ForWeekday(day.Weekday()) {
			if r.Start.IsZero() || r.End.IsZero() || !r.Start.IsBefore(r.End) {
				continue
			}

			for m := r.Start.Minutes(); m+durationMinutes <= r.End.Minutes(); m += stepMinutes {
				if _, dup := seen[m]; dup {
					continue
				}

				start := atMinute(day, m)
				// Местного времени нет (переход на летнее время)
				if start.Hour()*60+start.Minute() != m {
					continue
				}
				if !start.After(now) {
					continue
				}

				seen[m] = struct{}{}
				slots = append(slots, CandidateSlot{
					Start:     start,
					End:       start.Add(duration),
					Available: true,
				})
			}
		}
	}

	return slots
}

// IsSlot проверяет, что окно [start, end) совпадает с одним из слотов дня по рабочим часам.
// День определяется по местному времени loc
func IsSlot(hours WeeklyHours, start, end time.Time, stepMinutes int, loc *time.Location, now time.Time) bool {
	length := end.Sub(start)
	if length <= 0 || length%time.Minute != 0 {
		return false
	}

	local := start.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for _, s := range GenerateSlots(hours, day, day, int(length/time.Minute), stepMinutes, now) {
		if s.Start.Equal(start) && s.End.Equal(end) {
			return true
		}
	}
	return false
}

// atMinute момент времени minutes минут от полуночи по местным часам дня.
// time.Date нормализует минуты, поэтому при переходе на летнее время сохраняется настенное время
func atMinute(day time.Time, minutes int) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, 0, minutes, 0, 0, day.Location())
}
