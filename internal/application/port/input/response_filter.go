package input

// DecodeFunc turns a raw payload into a response tree, the way the host does.
type DecodeFunc func(raw []byte) (any, error)

// ResponseFilter is the interception point every decoded response passes through.
type ResponseFilter interface {
	// Process filters tree in place and returns the tree to hand to the UI.
	Process(tree any) any
	// Wrap returns decode with Process applied to every decoded tree.
	Wrap(decode DecodeFunc) DecodeFunc
}
