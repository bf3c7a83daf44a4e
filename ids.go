package weave

// Identifiers are small non-negative integers handed out by an IDGen.
// An id is only meaningful to the editor that generated it; weave never
// interprets ids beyond equality.

// NodeID identifies a node.
type NodeID int32

// PinID identifies a pin of either direction. Input and output pin ids
// are drawn from one shared counter, so a PinID alone determines which
// pin it is without an input/output namespace collision.
type PinID int32

// InputPinID identifies an input pin. Input pins accept at most one
// incoming link.
type InputPinID int32

// Pin erases the direction.
func (id InputPinID) Pin() PinID { return PinID(id) }

// OutputPinID identifies an output pin. Output pins may drive any number
// of links.
type OutputPinID int32

// Pin erases the direction.
func (id OutputPinID) Pin() PinID { return PinID(id) }

// LinkID identifies a link.
type LinkID int32

// AttributeID identifies a static (non-pin) attribute.
type AttributeID int32

// IDGen hands out unique identifiers for editor elements. Node, link,
// and attribute ids each use an independent monotonic counter; input and
// output pins share one counter. IDGen is a plain counter set (no
// atomics; weave is single-threaded, like the UI loop it serves).
type IDGen struct {
	nextNode int32
	nextPin  int32
	nextLink int32
	nextAttr int32
}

// NextNode returns a fresh node id.
func (g *IDGen) NextNode() NodeID {
	id := g.nextNode
	g.nextNode++
	return NodeID(id)
}

// NextInputPin returns a fresh input pin id.
func (g *IDGen) NextInputPin() InputPinID {
	id := g.nextPin
	g.nextPin++
	return InputPinID(id)
}

// NextOutputPin returns a fresh output pin id.
func (g *IDGen) NextOutputPin() OutputPinID {
	id := g.nextPin
	g.nextPin++
	return OutputPinID(id)
}

// NextLink returns a fresh link id.
func (g *IDGen) NextLink() LinkID {
	id := g.nextLink
	g.nextLink++
	return LinkID(id)
}

// NextAttribute returns a fresh static attribute id.
func (g *IDGen) NextAttribute() AttributeID {
	id := g.nextAttr
	g.nextAttr++
	return AttributeID(id)
}
