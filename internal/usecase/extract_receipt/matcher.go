package extract_receipt

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/archportal/booking-service/internal/domain"
)

const (
	amountTolerance = 0.01
	matchThreshold  = 0.6

	weightAmount   = 0.5
	weightDate     = 0.3
	weightMerchant = 0.2
)

// legalForms не несут информации о контрагенте
var legalForms = map[string]struct{}{
	"gmbh": {}, "ag": {}, "kg": {}, "co": {}, "ug": {}, "ohg": {}, "ek": {},
	"ltd": {}, "inc": {}, "llc": {}, "sa": {}, "sarl": {},
}

type match struct {
	transaction *domain.BankTransaction
	score       float64
	dayDiff     int
}

// bestMatch выбирает операцию с наибольшей оценкой не ниже порога.
// Кандидат: модуль суммы совпадает с точностью до цента и дата в пределах окна
func bestMatch(receipt *domain.Receipt, transactions []*domain.BankTransaction, windowDays int) (*match, bool) {
	candidates := make([]match, 0)

	for _, t := range transactions {
		if t.IsMatched() {
			continue
		}
		if receipt.Currency != "" && t.Currency != "" && !strings.EqualFold(receipt.Currency, t.Currency) {
			continue
		}

		diff := math.Abs(math.Abs(t.Amount) - math.Abs(receipt.Total))
		if diff > amountTolerance+1e-9 {
			continue
		}

		days := absDays(receipt.Date, t.BookedAt)
		if days > windowDays {
			continue
		}

		score := weightAmount*amountScore(diff) +
			weightDate*dateScore(days, windowDays) +
			weightMerchant*tokenSimilarity(receipt.Merchant, t.Counterparty)

		candidates = append(candidates, match{transaction: t, score: score, dayDiff: days})
	}

	if len(candidates) == 0 {
		return nil, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].dayDiff != candidates[j].dayDiff {
			return candidates[i].dayDiff < candidates[j].dayDiff
		}
		return candidates[i].transaction.ID < candidates[j].transaction.ID
	})

	best := candidates[0]
	if best.score < matchThreshold {
		return &best, false
	}
	return &best, true
}

// amountScore 1 при точном совпадении, 0.5 на границе допуска
func amountScore(diff float64) float64 {
	return clamp01(1 - diff/(2*amountTolerance))
}

// dateScore 1 для той же даты, линейно убывает к краю окна
func dateScore(days, windowDays int) float64 {
	return clamp01(1 - float64(days)/float64(windowDays+1))
}

// tokenSimilarity коэффициент Жаккара по словам названий
func tokenSimilarity(a, b string) float64 {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	intersection := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection

	return float64(intersection) / float64(union)
}

func tokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, skip := legalForms[f]; skip {
			continue
		}
		out[f] = struct{}{}
	}
	return out
}

// absDays разница в календарных днях без учёта часового пояса
func absDays(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(da.Sub(db).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
