package value

import "fmt"

// Byte accounting is platform-independent: strings count one byte per
// UTF-8 code unit, numbers count an IEEE double, and the deep form adds
// fixed header charges for heap containers.
const (
	numBytes    = 8
	strOverhead = 16
	arrOverhead = 24
	slotBytes   = 16
)

// ShallowBytes is the storage for the value's direct payload; the
// sizeof() builtin reports this.
func (v Value) ShallowBytes() int {
	switch v.kind {
	case KindNumber:
		return numBytes
	case KindString:
		return len(*v.str)
	case KindArray:
		total := 0
		for _, el := range *v.arr {
			total += el.ShallowBytes()
		}
		return total
	}
	return 0
}

// DeepBytes adds container overhead and recursively deep-counts
// contents; the vmem module reports this.
func (v Value) DeepBytes() int {
	switch v.kind {
	case KindNumber:
		return numBytes
	case KindString:
		return strOverhead + len(*v.str)
	case KindArray:
		total := arrOverhead
		for _, el := range *v.arr {
			total += slotBytes + el.DeepBytes()
		}
		return total
	}
	return 0
}

// Addr renders the backing pointer of a heap-owned value as hex; values
// with no heap backing report 0x0.
func (v Value) Addr() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%p", v.str)
	case KindArray:
		return fmt.Sprintf("%p", v.arr)
	case KindFunction:
		return fmt.Sprintf("%p", v.fn)
	}
	return "0x0"
}
