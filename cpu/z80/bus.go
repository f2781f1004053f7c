package z80

// Bus is the memory and I/O interface the core drives.
type Bus interface {
	ReadMem(address uint16) uint8
	WriteMem(address uint16, value uint8)
	ReadPort(port uint16) uint8
	WritePort(port uint16, value uint8)
}

// Callbacks lets the owning machine observe interrupt-acknowledge
// cycles. InterruptData supplies the low byte of the IM2 vector address
// (the value a daisy-chained peripheral would place on the bus during
// the acknowledge cycle); it is only consulted in interrupt mode 2.
type Callbacks interface {
	InterruptData() uint8
}
