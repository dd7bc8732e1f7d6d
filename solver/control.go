package solver

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/foamcase/caseerr"
	"github.com/notargets/foamcase/quantity"
)

// Control holds the job control options of the solver object.
type Control struct {
	InputCaseName          string            `json:"InputCaseName"`
	Parallel               bool              `json:"Parallel"`
	ParallelCores          int               `json:"ParallelCores"`
	MaxIterations          int               `json:"MaxIterations"`
	SteadyWriteInterval    float64           `json:"SteadyWriteInterval"`
	ConvergenceTol         float64           `json:"ConvergenceTol"`
	EndTime                quantity.Quantity `json:"EndTime"`
	TimeStep               quantity.Quantity `json:"TimeStep"`
	TransientWriteInterval quantity.Quantity `json:"TransientWriteInterval"`
}

func DefaultControl() Control {
	return Control{
		InputCaseName:          "case",
		Parallel:               true,
		ParallelCores:          4,
		MaxIterations:          2000,
		SteadyWriteInterval:    100,
		ConvergenceTol:         1e-4,
		EndTime:                quantity.MustParse("1 s"),
		TimeStep:               quantity.MustParse("0.001 s"),
		TransientWriteInterval: quantity.MustParse("0.1 s"),
	}
}

// Settings is the solver subtree of the case settings.
type Settings struct {
	SolverName             Name    `json:"SolverName"`
	InputCaseName          string  `json:"InputCaseName"`
	Parallel               bool    `json:"Parallel"`
	ParallelCores          int     `json:"ParallelCores"`
	MaxIterations          int     `json:"MaxIterations"`
	SteadyWriteInterval    float64 `json:"SteadyWriteInterval"`
	ConvergenceTol         float64 `json:"ConvergenceTol"`
	EndTime                float64 `json:"EndTime"`
	TimeStep               float64 `json:"TimeStep"`
	TransientWriteInterval float64 `json:"TransientWriteInterval"`
}

// MinParallelCores is the fewest cores a parallel run may be decomposed over
const MinParallelCores = 2

// Process fills in the solver settings for the selected solver. A parallel run requested
// on fewer than MinParallelCores cores is raised to MinParallelCores.
func Process(c Control, name Name) (s Settings, err error) {
	if c.InputCaseName == "" || strings.ContainsAny(c.InputCaseName, `/\`) {
		return s, caseerr.Validationf(c.InputCaseName, "case name must be a plain directory name")
	}
	s = Settings{
		SolverName:          name,
		InputCaseName:       c.InputCaseName,
		Parallel:            c.Parallel,
		ParallelCores:       c.ParallelCores,
		MaxIterations:       c.MaxIterations,
		SteadyWriteInterval: c.SteadyWriteInterval,
		ConvergenceTol:      c.ConvergenceTol,
	}
	if s.Parallel && s.ParallelCores < MinParallelCores {
		log.WithField("requested", s.ParallelCores).Debugf("raising parallel cores to %d", MinParallelCores)
		s.ParallelCores = MinParallelCores
	}
	times := []*float64{&s.EndTime, &s.TimeStep, &s.TransientWriteInterval}
	for i, q := range []quantity.Quantity{c.EndTime, c.TimeStep, c.TransientWriteInterval} {
		if *times[i], err = q.AsOr("s", 0); err != nil {
			return s, caseerr.Validationf("solver", "%v", err)
		}
	}
	return
}
