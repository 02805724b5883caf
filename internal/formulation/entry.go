package formulation

// Entry is one oil in a recipe. Percentage (share of total oil weight) is
// the stored value; the mass is always derived from it.
type Entry struct {
	OilID      int     `json:"oilId"`
	Percentage float64 `json:"percentage"`
}

// Amount is the oil mass for the given total oil weight.
func (e Entry) Amount(totalOilWeight float64) float64 {
	return e.Percentage / 100.0 * totalOilWeight
}

// EntryFromAmount converts a mass edit into an entry. A non-positive total
// yields a zero percentage instead of a non-finite one.
func EntryFromAmount(oilID int, amount, totalOilWeight float64) Entry {
	if totalOilWeight <= 0 {
		return Entry{OilID: oilID}
	}
	return Entry{OilID: oilID, Percentage: amount / totalOilWeight * 100.0}
}

// Entries is the ordered oil list of a recipe.
type Entries []Entry

// Add appends oilID with a zero share. Oils already in the list are left
// untouched and ok is false.
func (es Entries) Add(oilID int) (Entries, bool) {
	if es.Index(oilID) >= 0 {
		return es, false
	}
	return append(es, Entry{OilID: oilID}), true
}

// Remove drops the entry at index i. Out-of-range indexes are ignored.
func (es Entries) Remove(i int) Entries {
	if i < 0 || i >= len(es) {
		return es
	}
	out := make(Entries, 0, len(es)-1)
	out = append(out, es[:i]...)
	return append(out, es[i+1:]...)
}

// Index returns the position of oilID, or -1.
func (es Entries) Index(oilID int) int {
	for i, e := range es {
		if e.OilID == oilID {
			return i
		}
	}
	return -1
}

// PercentTotal sums the entry percentages.
func (es Entries) PercentTotal() float64 {
	total := 0.0
	for _, e := range es {
		total += e.Percentage
	}
	return total
}

// AmountTotal sums the derived masses.
func (es Entries) AmountTotal(totalOilWeight float64) float64 {
	total := 0.0
	for _, e := range es {
		total += e.Amount(totalOilWeight)
	}
	return total
}
