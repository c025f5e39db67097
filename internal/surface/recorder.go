package surface

import "github.com/lucasb-eyer/go-colorful"

// OpKind names a recorded draw call.
type OpKind string

const (
	OpClear        OpKind = "clear"
	OpFillCircle   OpKind = "fill_circle"
	OpStrokeCircle OpKind = "stroke_circle"
	OpPolyline     OpKind = "polyline"
	OpRadial       OpKind = "radial"
	OpConic        OpKind = "conic"
)

// Op is one recorded draw call with the translation active at the time.
type Op struct {
	Kind   OpKind
	X, Y   float64
	R      float64
	Width  float64
	Angle  float64
	Alpha  float64
	Color  colorful.Color
	Points []Point
	TX, TY float64
}

// Recorder is a Surface that keeps every call instead of drawing, for tests
// and for headless runs.
type Recorder struct {
	W, H   float64
	Ops    []Op
	tx, ty float64
}

// NewRecorder returns an empty recorder of the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the ops of kind in call order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

func (r *Recorder) push(op Op) {
	op.TX, op.TY = r.tx, r.ty
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() { r.push(Op{Kind: OpClear}) }

func (r *Recorder) Translate(dx, dy float64) { r.tx, r.ty = dx, dy }

func (r *Recorder) ResetTransform() { r.tx, r.ty = 0, 0 }

func (r *Recorder) FillCircle(x, y, rad float64, c colorful.Color, alpha float64) {
	r.push(Op{Kind: OpFillCircle, X: x, Y: y, R: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) StrokeCircle(x, y, rad, width float64, c colorful.Color, alpha float64) {
	r.push(Op{Kind: OpStrokeCircle, X: x, Y: y, R: rad, Width: width, Color: c, Alpha: alpha})
}

func (r *Recorder) Polyline(pts []Point, width float64, c colorful.Color, alpha float64) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.push(Op{Kind: OpPolyline, Points: cp, Width: width, Color: c, Alpha: alpha})
}

func (r *Recorder) RadialGradient(x, y, rad float64, c colorful.Color, alpha float64) {
	r.push(Op{Kind: OpRadial, X: x, Y: y, R: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) ConicSweep(cx, cy, angle float64, c colorful.Color, alpha float64) {
	r.push(Op{Kind: OpConic, X: cx, Y: cy, Angle: angle, Color: c, Alpha: alpha})
}
