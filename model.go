package currency

type RateTable struct {
	Base      string             `json:"base" bson:"base"`
	Timestamp int64              `json:"timestamp" bson:"timestamp"`
	Rates     map[string]float64 `json:"rates" bson:"rates"`
}

// Rate returns the rate for code and whether it is present.
func (t RateTable) Rate(code string) (float64, bool) {
	rate, ok := t.Rates[code]
	return rate, ok
}

func (t RateTable) Clone() RateTable {
	rates := make(map[string]float64, len(t.Rates))

	for code, rate := range t.Rates {
		rates[code] = rate
	}

	return RateTable{
		Base:      t.Base,
		Timestamp: t.Timestamp,
		Rates:     rates,
	}
}

type Meta struct {
	Settings  Settings `json:"settings"`
	Timestamp int64    `json:"timestamp"`
	URL       string   `json:"url"`
	Base      string   `json:"base"`
	FromCache bool     `json:"fromCache"`
}
