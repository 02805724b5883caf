package formulation

// QuickOil is one line of the quick lye calculator: a NaOH sap value and a
// weight entered directly by the user.
type QuickOil struct {
	Name   string  `json:"name"`
	Sap    float64 `json:"sap"`
	Weight float64 `json:"weight"`
}

// QuickRequest drives the quick calculator. Water is always a percentage of
// the oil weight and the lye is always NaOH.
type QuickRequest struct {
	Unit            Unit       `json:"unit"`
	SuperfatPercent float64    `json:"superfat"`
	WaterPercent    float64    `json:"waterPercent"`
	Oils            []QuickOil `json:"oils"`
}

// QuickResult is the quick calculator output, all in the request unit.
type QuickResult struct {
	Unit             Unit    `json:"unit"`
	TotalOilWeight   float64 `json:"totalOilWeight"`
	RawLye           float64 `json:"rawLye"`
	LyeDiscount      float64 `json:"lyeDiscount"`
	Lye              float64 `json:"lye"`
	Water            float64 `json:"water"`
	TotalBatchWeight float64 `json:"totalBatchWeight"`
}

// QuickCalculate is the reduced calculator. The total oil weight is the sum
// of the entered weights.
func QuickCalculate(req QuickRequest) QuickResult {
	terms := make([]sapTerm, 0, len(req.Oils))
	total := 0.0
	for _, o := range req.Oils {
		total += o.Weight
		terms = append(terms, sapTerm{mass: o.Weight, sap: LyeNaOH.AdjustSap(o.Sap)})
	}

	raw := lyeDemand(terms)
	lye := applySuperfat(raw, req.SuperfatPercent)
	water := percentOfOils(total, req.WaterPercent)

	return QuickResult{
		Unit:             req.Unit,
		TotalOilWeight:   total,
		RawLye:           raw,
		LyeDiscount:      raw - lye,
		Lye:              lye,
		Water:            water,
		TotalBatchWeight: total + lye + water,
	}
}
