package heuristic

import (
	"fmt"

	"github.com/crillab/modelzip/cnf"
)

// Names enumerates the `-h` CLI option (§6).
const (
	None    = "none"
	Jewa    = "jewa"
	JewaDyn = "jewa_dyn"
	Moms    = "moms"
	MomsDyn = "moms_dyn"
	Hybr    = "hybr"
	HybrDyn = "hybr_dyn"
)

// New builds the named heuristic over f. momsK is the `-mp` exponent
// and hybridP is the `-hp` blend factor (both only consulted by the
// strategies that use them).
func New(name string, f *cnf.Formula, momsK, hybridP float64) (Heuristic, error) {
	switch name {
	case None:
		return NewParsingOrder(f), nil
	case Jewa:
		return NewJeroslowWang(f, false), nil
	case JewaDyn:
		return NewJeroslowWang(f, true), nil
	case Moms:
		return NewMomsFreeman(f, false, momsK), nil
	case MomsDyn:
		return NewMomsFreeman(f, true, momsK), nil
	case Hybr:
		return NewHybrid(f, false, hybridP, momsK), nil
	case HybrDyn:
		return NewHybrid(f, true, hybridP, momsK), nil
	default:
		return nil, fmt.Errorf("heuristic: unknown heuristic %q", name)
	}
}
