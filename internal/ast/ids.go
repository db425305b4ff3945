package ast

// NodeID is the stable identity of a node. It is assigned once when the tree is
// ingested and never reused, so it survives moves between containers.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
