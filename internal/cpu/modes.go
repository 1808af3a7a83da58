package cpu

// AddressMode is one of the twelve 6502 addressing modes (spec.md §4.1).
type AddressMode uint8

const (
	ABS AddressMode = iota // absolute
	ABX                    // absolute,X
	ABY                    // absolute,Y
	IDX                    // (indirect,X)
	IDY                    // (indirect),Y
	IMM                    // immediate
	IMP                    // implicit (no operand bytes)
	IND                    // (indirect) — JMP only, reproduces the page-wrap bug
	REL                    // relative (branches)
	ZPG                    // zero page
	ZPX                    // zero page,X
	ZPY                    // zero page,Y
)

var modeNames = [...]string{
	ABS: "ABS", ABX: "ABX", ABY: "ABY", IDX: "IDX", IDY: "IDY", IMM: "IMM",
	IMP: "IMP", IND: "IND", REL: "REL", ZPG: "ZPG", ZPX: "ZPX", ZPY: "ZPY",
}

func (m AddressMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "???"
}
