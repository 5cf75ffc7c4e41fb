package get_availability

import (
	"time"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/types"
)

// markBusy помечает недоступными слоты, пересекающиеся хотя бы с одним занятым интервалом
func markBusy(slots []domain.CandidateSlot, busy []domain.BusyInterval) {
	for i := range slots {
		if !slots[i].Available {
			continue
		}
		for _, b := range busy {
			if b.Overlaps(slots[i].Start, slots[i].End) {
				slots[i].Available = false
				break
			}
		}
	}
}

// markDemoBusy помечает занятыми слоты, начинающиеся в демо-время (10:30, 14:00, 15:30)
func markDemoBusy(slots []domain.CandidateSlot, loc *time.Location) {
	demo := make(map[int]struct{}, len(domain.DemoBusyStartTimes))
	for _, s := range domain.DemoBusyStartTimes {
		demo[types.MustTimeString(s).Minutes()] = struct{}{}
	}

	for i := range slots {
		local := slots[i].Start.In(loc)
		if _, ok := demo[local.Hour()*60+local.Minute()]; ok {
			slots[i].Available = false
		}
	}
}
