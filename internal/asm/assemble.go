package asm

// origin is the address the first byte of assembled output loads at,
// matching the ROM load address in spec.md §3/§6.3.
const origin = 0x200

// Assemble compiles a line-oriented mnemonic source into a CHIP-8 ROM
// image, following the two-pass process in spec.md §4.5: first compute a
// label -> address map, then walk the elements again emitting bytes,
// resolving address-referencing instructions against that map.
func Assemble(source string) ([]byte, error) {
	prog, err := parseProgram(source)
	if err != nil {
		return nil, err
	}

	labels, err := labelAddresses(prog)
	if err != nil {
		return nil, err
	}

	var out []byte
	for _, el := range prog {
		word, raw, err := el.emit(labels)
		if err != nil {
			return nil, err
		}
		if el.kind == kindData {
			out = append(out, raw...)
			continue
		}
		out = append(out, byte(word>>8), byte(word))
	}
	return out, nil
}

func labelAddresses(prog []element) (map[string]uint16, error) {
	labels := make(map[string]uint16)
	pc := uint16(origin)
	for _, el := range prog {
		if el.label != "" {
			if _, dup := labels[el.label]; dup {
				return nil, &LabelError{Label: el.label, Msg: "duplicate label"}
			}
			labels[el.label] = pc
		}
		pc += uint16(el.byteLen())
	}
	return labels, nil
}

// emit resolves a single element to either a 16-bit word (instructions and
// label-referencing branches) or a raw byte slice (.data).
func (el element) emit(labels map[string]uint16) (word uint16, raw []byte, err error) {
	switch el.kind {
	case kindInstr:
		return el.word, nil, nil
	case kindData:
		return 0, el.data, nil
	case kindJump:
		addr, ok := labels[el.ref]
		if !ok {
			return 0, nil, &LabelError{Label: el.ref, Msg: "unresolved reference"}
		}
		return 0x1000 | addr, nil, nil
	case kindCall:
		addr, ok := labels[el.ref]
		if !ok {
			return 0, nil, &LabelError{Label: el.ref, Msg: "unresolved reference"}
		}
		return 0x2000 | addr, nil, nil
	case kindJumpReg:
		addr, ok := labels[el.ref]
		if !ok {
			return 0, nil, &LabelError{Label: el.ref, Msg: "unresolved reference"}
		}
		return 0xB000 | addr, nil, nil
	default:
		return 0, nil, nil
	}
}
