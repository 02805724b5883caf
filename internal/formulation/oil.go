package formulation

// FattyAcids holds the eight fatty acids tracked per oil, as percentages
// of the oil's triglyceride composition. They are measured values and do
// not have to sum to 100.
type FattyAcids struct {
	Lauric     float64 `json:"lauric"`
	Myristic   float64 `json:"myristic"`
	Palmitic   float64 `json:"palmitic"`
	Stearic    float64 `json:"stearic"`
	Ricinoleic float64 `json:"ricinoleic"`
	Oleic      float64 `json:"oleic"`
	Linoleic   float64 `json:"linoleic"`
	Linolenic  float64 `json:"linolenic"`
}

// Saturated sums lauric, myristic, palmitic and stearic acids.
func (f FattyAcids) Saturated() float64 {
	return f.Lauric + f.Myristic + f.Palmitic + f.Stearic
}

// Unsaturated sums ricinoleic, oleic, linoleic and linolenic acids.
func (f FattyAcids) Unsaturated() float64 {
	return f.Ricinoleic + f.Oleic + f.Linoleic + f.Linolenic
}

func (f FattyAcids) scaled(weight float64) FattyAcids {
	return FattyAcids{
		Lauric:     f.Lauric * weight,
		Myristic:   f.Myristic * weight,
		Palmitic:   f.Palmitic * weight,
		Stearic:    f.Stearic * weight,
		Ricinoleic: f.Ricinoleic * weight,
		Oleic:      f.Oleic * weight,
		Linoleic:   f.Linoleic * weight,
		Linolenic:  f.Linolenic * weight,
	}
}

func (f FattyAcids) add(o FattyAcids) FattyAcids {
	return FattyAcids{
		Lauric:     f.Lauric + o.Lauric,
		Myristic:   f.Myristic + o.Myristic,
		Palmitic:   f.Palmitic + o.Palmitic,
		Stearic:    f.Stearic + o.Stearic,
		Ricinoleic: f.Ricinoleic + o.Ricinoleic,
		Oleic:      f.Oleic + o.Oleic,
		Linoleic:   f.Linoleic + o.Linoleic,
		Linolenic:  f.Linolenic + o.Linolenic,
	}
}

// Oil is a static oil property record. Sap is the NaOH saponification
// value: grams of NaOH per gram of oil at 0% superfat.
type Oil struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Sap    float64 `json:"sap"`
	Iodine float64 `json:"iodine"`
	INS    float64 `json:"ins"`
	FattyAcids
}

// OilSource resolves oil ids to property records.
type OilSource interface {
	Oil(id int) (Oil, bool)
}

// OilMap is the simplest OilSource, keyed by oil id.
type OilMap map[int]Oil

// NewOilMap indexes oils by id. Later duplicates win.
func NewOilMap(oils ...Oil) OilMap {
	m := make(OilMap, len(oils))
	for _, o := range oils {
		m[o.ID] = o
	}
	return m
}

// Oil implements OilSource.
func (m OilMap) Oil(id int) (Oil, bool) {
	o, ok := m[id]
	return o, ok
}

// unknownOil is substituted for ids the source cannot resolve.
func unknownOil(id int) Oil {
	return Oil{ID: id, Name: "Unknown"}
}

// NamedValue pairs a display name with a value.
type NamedValue struct {
	Name  string
	Value float64
}

// Named lists the acids in display order.
func (f FattyAcids) Named() []NamedValue {
	return []NamedValue{
		{Name: "Lauric", Value: f.Lauric},
		{Name: "Myristic", Value: f.Myristic},
		{Name: "Palmitic", Value: f.Palmitic},
		{Name: "Stearic", Value: f.Stearic},
		{Name: "Ricinoleic", Value: f.Ricinoleic},
		{Name: "Oleic", Value: f.Oleic},
		{Name: "Linoleic", Value: f.Linoleic},
		{Name: "Linolenic", Value: f.Linolenic},
	}
}
