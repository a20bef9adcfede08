// Package vtsequence turns the raw byte fragments a vtparser.Parser
// collects into a structured Sequence value and dispatches it against a
// static function table, per spec.md §4.3. Grounded on the escape/CSI
// case-switch bodies of the teacher's terminal/handler.go (which recognizes
// a comparable, narrower repertoire inline rather than through a lookup
// table), restructured into an explicit table the way spec.md §4.3 and
// §9 (a static (category,leader,intermediates,final) -> FunctionDefinition
// map) call for.
package vtsequence

// Category is the class of escape sequence a Sequence belongs to.
type Category uint8

const (
	CategoryC1 Category = iota
	CategoryESC
	CategoryCSI
	CategoryOSC
	CategoryDCS
	CategoryAPC
	CategoryPM
)

func (c Category) String() string {
	switch c {
	case CategoryC1:
		return "C1"
	case CategoryESC:
		return "ESC"
	case CategoryCSI:
		return "CSI"
	case CategoryOSC:
		return "OSC"
	case CategoryDCS:
		return "DCS"
	case CategoryAPC:
		return "APC"
	case CategoryPM:
		return "PM"
	default:
		return "?"
	}
}

// emptyParam is the sentinel spec.md §4.3 asks for: a sub-parameter field
// that was left empty in the source text (e.g. the middle field of
// `38:2::255:0:0`), distinct from an explicit zero.
const emptyParam uint16 = 0xffff

// Param is one parameter's sub-parameter list. A plain `;`-separated
// parameter like `25` decodes to Param{25}; a colon-group like `4:3`
// decodes to Param{4,3}; a bare `;` between two semicolons decodes to
// Param{emptyParam}.
type Param []uint16

// Get returns sub-parameter i, or def if absent or marked empty.
func (p Param) Get(i int, def uint16) uint16 {
	if i < 0 || i >= len(p) || p[i] == emptyParam {
		return def
	}
	return p[i]
}

// Sequence is the structured form of one dispatched escape/control
// sequence, per spec.md §4.3's field list.
type Sequence struct {
	Category      Category
	Leader        byte // 0 if none, else one of < = > ?
	Intermediates string
	Params        []Param
	FinalByte     byte
	Payload       string // OSC/DCS/APC/PM string payload
}

// Param0 returns Params[i][0], or def if the parameter list is too short
// or that field is empty — the common case of a scalar CSI parameter.
func (s Sequence) Param0(i int, def uint16) uint16 {
	if i < 0 || i >= len(s.Params) {
		return def
	}
	return s.Params[i].Get(0, def)
}

// ParamCount returns the number of top-level (semicolon-separated)
// parameters collected.
func (s Sequence) ParamCount() int { return len(s.Params) }
