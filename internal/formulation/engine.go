// Package formulation computes lye, water and fragrance quantities and the
// qualitative properties of a soap recipe from its oils.
package formulation

// Request is everything the calculator needs for one computation.
type Request struct {
	LyeType         LyeType
	Unit            Unit
	TotalOilWeight  float64
	Water           WaterSettings
	SuperfatPercent float64
	// FragranceRatio is ounces of fragrance per pound of oil whatever Unit is.
	FragranceRatio float64
	Oils           Entries
}

// DefaultRequest mirrors the initial state of the calculator form.
func DefaultRequest() Request {
	return Request{
		LyeType:         LyeNaOH,
		Unit:            UnitPound,
		TotalOilWeight:  1,
		Water:           DefaultWaterSettings(),
		SuperfatPercent: 5,
		FragranceRatio:  0.5,
	}
}

// Qualities are the dimensionless soap property scores.
type Qualities struct {
	Hardness     float64 `json:"hardness"`
	Cleansing    float64 `json:"cleansing"`
	Conditioning float64 `json:"conditioning"`
	Bubbly       float64 `json:"bubbly"`
	Creamy       float64 `json:"creamy"`
	Iodine       float64 `json:"iodine"`
	INS          float64 `json:"ins"`
}

// OilLine is one resolved recipe oil.
type OilLine struct {
	Oil        Oil     `json:"oil"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Lye        float64 `json:"lye"`
	Missing    bool    `json:"missing,omitempty"`
}

// Result is the output of a computation. Lye, Water and TotalBatchWeight
// are in the request unit; Fragrance is in FragranceUnit.
type Result struct {
	Unit             Unit       `json:"unit"`
	Oils             []OilLine  `json:"oils"`
	TotalOilWeight   float64    `json:"totalOilWeight"`
	RawLye           float64    `json:"rawLye"`
	Lye              float64    `json:"lye"`
	Water            float64    `json:"water"`
	Fragrance        float64    `json:"fragrance"`
	FragranceUnit    Unit       `json:"fragranceUnit"`
	TotalBatchWeight float64    `json:"totalBatchWeight"`
	Qualities        Qualities  `json:"qualities"`
	FattyAcids       FattyAcids `json:"fattyAcids"`
	Saturated        float64    `json:"saturated"`
	Unsaturated      float64    `json:"unsaturated"`
	MissingOils      []int      `json:"missingOils,omitempty"`
}

// Engine computes formulations against an oil table.
type Engine struct {
	oils OilSource
}

// NewEngine returns an engine reading oil properties from oils.
func NewEngine(oils OilSource) *Engine {
	return &Engine{oils: oils}
}

// Compute runs the full calculation. It never fails: numeric validation is
// the caller's job (see Validate) and unknown oils are replaced by an
// all-zero record and listed in Result.MissingOils.
func (e *Engine) Compute(req Request) Result {
	res := Result{
		Unit:           req.Unit,
		TotalOilWeight: req.TotalOilWeight,
		FragranceUnit:  req.Unit.FragranceUnit(),
		Oils:           make([]OilLine, 0, len(req.Oils)),
	}
	// no oils means no batch yet: water and fragrance are not derived
	if len(req.Oils) == 0 {
		res.TotalBatchWeight = req.TotalOilWeight
		return res
	}

	terms := make([]sapTerm, 0, len(req.Oils))
	for _, entry := range req.Oils {
		oil, ok := e.lookup(entry.OilID)
		if !ok {
			res.MissingOils = append(res.MissingOils, entry.OilID)
		}
		amount := entry.Amount(req.TotalOilWeight)
		sap := req.LyeType.AdjustSap(oil.Sap)
		terms = append(terms, sapTerm{mass: amount, sap: sap})
		res.Oils = append(res.Oils, OilLine{
			Oil:        oil,
			Percentage: entry.Percentage,
			Amount:     amount,
			Lye:        applySuperfat(amount*sap, req.SuperfatPercent),
			Missing:    !ok,
		})
	}

	res.RawLye = lyeDemand(terms)
	res.Lye = applySuperfat(res.RawLye, req.SuperfatPercent)
	res.Water = req.Water.Water(req.TotalOilWeight, res.Lye)
	res.Fragrance = fragrance(req.Unit, req.TotalOilWeight, req.FragranceRatio)

	res.FattyAcids, res.Qualities = aggregate(res.Oils)
	res.Saturated = res.FattyAcids.Saturated()
	res.Unsaturated = res.FattyAcids.Unsaturated()

	res.TotalBatchWeight = req.TotalOilWeight + res.Lye + res.Water + req.Unit.fromFragranceUnit(res.Fragrance)
	return res
}

func (e *Engine) lookup(id int) (Oil, bool) {
	if e.oils == nil {
		return unknownOil(id), false
	}
	oil, ok := e.oils.Oil(id)
	if !ok {
		return unknownOil(id), false
	}
	return oil, true
}

// fragrance returns the fragrance amount in unit.FragranceUnit().
func fragrance(unit Unit, totalOilWeight, ratio float64) float64 {
	ounces := unit.ToPounds(totalOilWeight) * ratio
	if unit.FragranceUnit() == UnitGram {
		return ounces * gramsPerOunce
	}
	return ounces
}
