package buffer

// ZOrder names a render layer. Layers compose via stable sort, low to
// high: higher layers overwrite lower-layer cells.
type ZOrder int

const (
	Normal ZOrder = iota
	High
	Caret
	Glass
)

var zOrders = [...]ZOrder{Normal, High, Caret, Glass}

// RenderPipeline groups ordered RenderOp lists by Z-order.
type RenderPipeline struct {
	layers map[ZOrder][]RenderOp
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *RenderPipeline {
	return &RenderPipeline{layers: make(map[ZOrder][]RenderOp)}
}

// Push appends op to the given Z-order's op list.
func (p *RenderPipeline) Push(z ZOrder, op RenderOp) {
	p.layers[z] = append(p.layers[z], op)
}

// PushAll appends ops to the given Z-order's op list.
func (p *RenderPipeline) PushAll(z ZOrder, ops []RenderOp) {
	p.layers[z] = append(p.layers[z], ops...)
}

// Flatten returns every op in the pipeline, Z-order low to high, each
// layer's ops in push order.
func (p *RenderPipeline) Flatten() []RenderOp {
	var out []RenderOp
	for _, z := range zOrders {
		out = append(out, p.layers[z]...)
	}
	return out
}

// Execute runs the pipeline's ops, flattened low-to-high, against buf.
// Higher Z-order ops naturally overwrite lower ones since they execute
// later against the same grid.
func (p *RenderPipeline) Execute(buf *OffscreenBuffer) {
	es := emitterState{}
	for _, op := range p.Flatten() {
		op.execute(buf, &es)
	}
}
