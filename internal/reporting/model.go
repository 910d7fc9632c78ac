package reporting

import "time"

// Summary is the dashboard headline row.
type Summary struct {
	ActiveMembers     int   `db:"active_members" json:"active_members"`
	ClassesToday      int   `db:"classes_today" json:"classes_today"`
	MonthRevenueCents int64 `db:"month_revenue_cents" json:"month_revenue_cents"`
	ExpiringSoon      int   `db:"expiring_soon" json:"expiring_soon"`
}

// LowSeatSession is an upcoming session with few seats left.
type LowSeatSession struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Reserved  int       `db:"reserved" json:"reserved"`
	Remaining int       `db:"remaining" json:"remaining"`
}

type TypeStat struct {
	TypeName     string `db:"type_name" json:"type_name"`
	Sessions     int    `db:"sessions" json:"sessions"`
	Reservations int    `db:"reservations" json:"reservations"`
}

type MethodStat struct {
	Method     string `db:"method" json:"method"`
	Payments   int    `db:"payments" json:"payments"`
	TotalCents int64  `db:"total_cents" json:"total_cents"`
}

// DayCount is one day of the dense last-7-days series. Days without
// reservations appear with a zero count.
type DayCount struct {
	Day          time.Time `db:"day" json:"day"`
	Reservations int       `db:"reservations" json:"reservations"`
}
