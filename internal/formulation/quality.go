package formulation

// QualityRange is the recommended band for a quality score.
type QualityRange struct {
	Name string
	Low  float64
	High float64
}

// Contains reports whether v lies inside the band.
func (r QualityRange) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// QualityRanges lists the recommended bands in display order.
var QualityRanges = []QualityRange{
	{Name: "Hardness", Low: 29, High: 54},
	{Name: "Cleansing", Low: 12, High: 22},
	{Name: "Conditioning", Low: 44, High: 69},
	{Name: "Bubbly", Low: 14, High: 46},
	{Name: "Creamy", Low: 16, High: 48},
	{Name: "Iodine", Low: 41, High: 70},
	{Name: "INS", Low: 136, High: 165},
}

// Value returns the score named by a QualityRange.
func (q Qualities) Value(name string) float64 {
	switch name {
	case "Hardness":
		return q.Hardness
	case "Cleansing":
		return q.Cleansing
	case "Conditioning":
		return q.Conditioning
	case "Bubbly":
		return q.Bubbly
	case "Creamy":
		return q.Creamy
	case "Iodine":
		return q.Iodine
	case "INS":
		return q.INS
	}
	return 0
}

// aggregate weights each oil's fatty acids, iodine and INS by its share of
// the recipe. Shares are used as stored; they are not renormalised when
// they do not add up to 100.
func aggregate(lines []OilLine) (FattyAcids, Qualities) {
	var acids FattyAcids
	var q Qualities
	for _, line := range lines {
		w := line.Percentage / 100.0
		acids = acids.add(line.Oil.FattyAcids.scaled(w))
		q.Iodine += line.Oil.Iodine * w
		q.INS += line.Oil.INS * w
	}

	q.Hardness = acids.Lauric + acids.Myristic + acids.Palmitic + acids.Stearic
	q.Cleansing = acids.Lauric + acids.Myristic
	q.Conditioning = acids.Ricinoleic + acids.Oleic + acids.Linoleic + acids.Linolenic
	q.Bubbly = acids.Lauric + acids.Myristic + acids.Ricinoleic
	q.Creamy = acids.Palmitic + acids.Stearic + acids.Ricinoleic
	return acids, q
}
