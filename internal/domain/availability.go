package domain

import "time"

// CandidateSlot кандидат на запись. Создаётся на каждый запрос и не сохраняется
type CandidateSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// BusyInterval занятый интервал из внешнего календаря или существующей записи
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps возвращает true, если интервалы действительно пересекаются.
// Интервалы, которые только соприкасаются границами, не пересекаются:
// слот 09:00–10:00 и занятость 10:00–11:00 совместимы.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// Duration длительность слота
func (s *CandidateSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
