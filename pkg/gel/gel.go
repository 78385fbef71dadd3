// Package gel implements the mobility calculator for virtual gel
// electrophoresis.
//
// Electrophoretic mobility is inversely related to fragment size: short DNA
// fragments move through the gel matrix faster than long ones. The calculator
// reduces that relationship to a closed form: every fragment gets a raw
// mobility of 1/(length+ε), the raw values are min-max normalized across the
// whole run (control included), and the normalized value is mapped linearly
// onto a standard 8 cm gel.
//
// All values are transient; the package holds no state between calls.
//
// # Example
//
//	res, err := gel.Migrate([]int{100, 500, 1000}, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range res.Samples {
//	    fmt.Printf("%d bp -> %.2f cm\n", b.LengthBP, b.RealCM)
//	}
package gel

const (
	// GelLengthCM is the physical length of the simulated gel in centimeters.
	// Real distances returned by Migrate fall in [0, GelLengthCM].
	GelLengthCM = 8.0

	// epsilon keeps the mobility denominator strictly positive.
	epsilon = 1e-6
)

// Band is the computed migration result for a single fragment.
type Band struct {
	// LengthBP is the fragment length in base pairs.
	LengthBP int `json:"length_bp"`

	// Norm is the min-max normalized migration distance in [0, 1].
	Norm float64 `json:"norm"`

	// RealCM is the real-world distance, GelLengthCM * (1 - Norm).
	RealCM float64 `json:"real_cm"`
}

// Result holds the outcome of a migration run.
// Samples preserve the input order; Control is nil when no control fragment
// was supplied.
type Result struct {
	Samples []Band `json:"samples"`
	Control *Band  `json:"control,omitempty"`
}

// Lanes returns the total number of lanes the result occupies, counting the
// control lane when present.
func (r Result) Lanes() int {
	n := len(r.Samples)
	if r.Control != nil {
		n++
	}
	return n
}
