package entities

// CommunicationType selects how a transaction is serialized and sent.
type CommunicationType string

const (
	CommunicationXML       CommunicationType = "xml"
	CommunicationNameValue CommunicationType = "namevalue"
	CommunicationRedirect  CommunicationType = "redirect"
)

func (c CommunicationType) Valid() bool {
	switch c {
	case CommunicationXML, CommunicationNameValue, CommunicationRedirect:
		return true
	}
	return false
}

// FieldNode is one entry of a request layout. A node with children is a
// named group (an XML element wrapping other elements); a node without
// children is a gateway field resolved at build time.
type FieldNode struct {
	Name     string
	Children []FieldNode
}

func (n FieldNode) IsGroup() bool {
	return len(n.Children) > 0
}

// Leaves returns the gateway field names of a layout in document order.
func Leaves(nodes []FieldNode) []string {
	var out []string
	for _, n := range nodes {
		if n.IsGroup() {
			out = append(out, Leaves(n.Children)...)
			continue
		}
		out = append(out, n.Name)
	}
	return out
}

// TransactionDefinition describes one request/response exchange type.
// It is built once with the gateway and never mutated afterwards.
type TransactionDefinition struct {
	Name              string
	Request           []FieldNode
	Values            map[string]string
	LoopForStatus     []FinalStatus
	CommunicationType CommunicationType
	URL               string
	// FinalizeOnHandoff finalizes the attempt when a redirect hands the
	// donor off to the gateway.
	FinalizeOnHandoff FinalStatus
}

func (t TransactionDefinition) Value(name string) (string, bool) {
	v, ok := t.Values[name]
	return v, ok
}

func (t TransactionDefinition) LoopsForStatus() bool {
	return len(t.LoopForStatus) > 0
}

func (t TransactionDefinition) InLoopSet(s FinalStatus) bool {
	for _, candidate := range t.LoopForStatus {
		if candidate == s {
			return true
		}
	}
	return false
}

// DataConstraint limits a staged field on the request pass.
type DataConstraint struct {
	Type   string
	Length int
}
