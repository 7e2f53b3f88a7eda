package model

import "time"

// DateLayout is the calendar-day format used on the wire for waste dates.
const DateLayout = "2006-01-02"

// WasteEntry is one logged portion of wasted food.
// Date is a calendar day stored as UTC midnight; QuantityKg is derived from Quantity and Unit.
type WasteEntry struct {
	ID         string    `json:"id"`
	FoodItem   string    `json:"food_item"`
	Category   string    `json:"category"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	QuantityKg float64   `json:"quantity_kg"`
	Date       Day       `json:"date"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Day is a date without time of day. It marshals as YYYY-MM-DD.
type Day struct {
	time.Time
}

// NewDay truncates t to its calendar day in t's location and re-anchors it at UTC midnight.
func NewDay(t time.Time) Day {
	y, m, d := t.Date()
	return Day{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, err
	}
	return Day{t}, nil
}

func (d Day) String() string {
	return d.Format(DateLayout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return &time.ParseError{Layout: DateLayout, Value: string(b)}
	}
	parsed, err := ParseDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
