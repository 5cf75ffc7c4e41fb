package domain

import "time"

// TokenState состояние ссылки на запись
type TokenState string

const (
	TokenStateValid   TokenState = "valid"
	TokenStateUsed    TokenState = "used"
	TokenStateExpired TokenState = "expired"
)

// BookingToken одноразовая ссылка на запись, выданная администратором
type BookingToken struct {
	ID                int64
	Token             string
	ContactName       string
	ContactEmail      string
	AppointmentTypeID *int64
	ExpiresAt         time.Time
	Used              bool
	UsedAt            *time.Time
	CreatedBy         int64
	CreatedAt         time.Time
}

// IsExpired токен просрочен строго после expires_at
func (t *BookingToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// State классифицирует токен. Использованный токен остаётся использованным даже после истечения срока
func (t *BookingToken) State(now time.Time) TokenState {
	switch {
	case t.Used:
		return TokenStateUsed
	case t.IsExpired(now):
		return TokenStateExpired
	default:
		return TokenStateValid
	}
}

// CanBeUsed возвращает true для неиспользованного и непросроченного токена
func (t *BookingToken) CanBeUsed(now time.Time) bool {
	return t.State(now) == TokenStateValid
}
