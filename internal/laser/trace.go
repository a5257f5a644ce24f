package laser

import "fmt"

// Outcome is how a traced beam terminated.
type Outcome uint8

const (
	OutcomeExited        Outcome = iota // Left the grid
	OutcomeScored                       // Reached a target
	OutcomeAbsorbed                     // Hit an emitter or blocker
	OutcomeCycleDetected                // Exceeded the step limit
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeExited:
		return "exited"
	case OutcomeScored:
		return "scored"
	case OutcomeAbsorbed:
		return "absorbed"
	case OutcomeCycleDetected:
		return "cycle detected"
	default:
		return "unknown"
	}
}

// Result describes a single traced beam.
type Result struct {
	Origin  Pos
	Start   Dir     // Initial beam direction
	Path    []Pos   // Visited cells in order, starting with the origin
	Outcome Outcome // How the beam terminated
	Dir     Dir     // Beam direction when it terminated
	Hit     Pos     // Cell that stopped the beam (scored/absorbed only)
	Points  int     // Target value when scored
	Steps   int     // Number of advances taken
}

// Last returns the last valid cell the beam visited.
func (r Result) Last() Pos {
	if len(r.Path) == 0 {
		return r.Origin
	}
	return r.Path[len(r.Path)-1]
}

// Stopped reports whether the beam ended on a piece (target, emitter or blocker).
func (r Result) Stopped() bool {
	return r.Outcome == OutcomeScored || r.Outcome == OutcomeAbsorbed
}

type traceOptions struct {
	stepLimit int
}

// TraceOption configures Trace and Fire.
type TraceOption func(*traceOptions)

// WithStepLimit overrides the default step bound of Rows*Cols.
// Values <= 0 keep the default.
func WithStepLimit(n int) TraceOption {
	return func(o *traceOptions) {
		if n > 0 {
			o.stepLimit = n
		}
	}
}

// Trace follows a beam leaving from in direction d until it exits the grid,
// reaches a target, is absorbed, or exceeds the step limit.
//
// Rules, applied to each cell the beam advances into:
//  1. Out of bounds: terminate, exited
//  2. Mirror: reflect and continue
//  3. Target: terminate, scored
//  4. Emitter or blocker: terminate, absorbed
//  5. Empty: continue
//
// The step limit defaults to Rows*Cols. Exceeding it returns ErrCycleDetected
// together with the partial result.
func Trace(g *Grid, from Pos, d Dir, opts ...TraceOption) (Result, error) {
	o := traceOptions{stepLimit: g.Rows * g.Cols}
	for _, opt := range opts {
		opt(&o)
	}

	result := Result{Origin: from, Start: d, Dir: d}
	if !g.InBounds(from) {
		return result, fmt.Errorf("%w: %v", ErrOutOfBounds, from)
	}
	result.Path = append(result.Path, from)

	pos := from
	for {
		if result.Steps >= o.stepLimit {
			result.Outcome = OutcomeCycleDetected
			return result, fmt.Errorf("%w: beam from %v still travelling after %d steps",
				ErrCycleDetected, from, result.Steps)
		}

		next := pos.Step(result.Dir)
		result.Steps++
		if !g.InBounds(next) {
			result.Outcome = OutcomeExited
			return result, nil
		}
		result.Path = append(result.Path, next)
		pos = next

		piece := g.At(next)
		switch piece.Kind {
		case KindMirrorForward, KindMirrorBackward:
			result.Dir = Reflect(piece.Kind, result.Dir)
		case KindTarget:
			result.Outcome = OutcomeScored
			result.Hit = next
			result.Points = piece.Value
			return result, nil
		case KindEmitter, KindBlocker:
			result.Outcome = OutcomeAbsorbed
			result.Hit = next
			return result, nil
		}
	}
}

// Fire traces the beam of every emitter on the grid in row-major order.
// The grid is not modified. Returns ErrNoEmitter when the grid holds no emitter.
// A cycle in one beam does not prevent the others from being traced; the first
// such error is returned alongside all results.
func Fire(g *Grid, opts ...TraceOption) ([]Result, error) {
	emitters := g.Emitters()
	if len(emitters) == 0 {
		return nil, ErrNoEmitter
	}

	results := make([]Result, 0, len(emitters))
	var firstErr error
	for _, pos := range emitters {
		res, err := Trace(g, pos, g.At(pos).Dir, opts...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results = append(results, res)
	}
	return results, firstErr
}

// TotalPoints sums the points of all scored results.
// A target hit by several beams in the same volley counts once.
func TotalPoints(results []Result) int {
	seen := make(map[Pos]bool)
	total := 0
	for _, r := range results {
		if r.Outcome != OutcomeScored || seen[r.Hit] {
			continue
		}
		seen[r.Hit] = true
		total += r.Points
	}
	return total
}
