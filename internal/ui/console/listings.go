package console

import "fmt"

// instruction is one line of illustrative machine code. None of it runs.
type instruction struct {
	Bits    string
	Asm     string
	Comment string
}

func readListing(n int) []instruction {
	return []instruction{
		{"10110000 00000001", "MOV AL, 1", "Load file handle into AL"},
		{"10001101 00011110", "LEA BX, [filename]", "Load address of the file name"},
		{"10110100 00111101", "MOV AH, 3Dh", "Open-file function"},
		{"11001101 00100001", "INT 21h", "DOS system call"},
		{"10110100 00111111", "MOV AH, 3Fh", "Read-file function"},
		{"10111001 " + bits8(n), fmt.Sprintf("MOV CX, %d", n), byteCount("Read", n)},
		{"11001101 00100001", "INT 21h", "System call - read"},
	}
}

func usbInitListing() []instruction {
	return []instruction{
		{"11100100 01100000", "IN AL, 60h", "Read USB port status"},
		{"00001100 00000001", "OR AL, 01h", "Set USB enable bit"},
		{"11100110 01100000", "OUT 60h, AL", "Write configuration to the port"},
		{"10111010 00111000 00000100", "MOV DX, 0438h", "USB controller base address"},
		{"10110000 00000001", "MOV AL, 01h", "Transmit mode"},
		{"11101110", "OUT DX, AL", "Configure USB mode"},
	}
}

func receiveListing() []instruction {
	return []instruction{
		{"10111010 11111000 00000011", "MOV DX, 03F8h", "USB input port"},
		{"11101100", "IN AL, DX", "Read byte from the USB port"},
		{"00111100 00000000", "CMP AL, 0", "Check for data"},
		{"01110100 11111010", "JE RX_WAIT", "Wait while there is no data"},
	}
}

func writeListing(n int) []instruction {
	return []instruction{
		{"10110100 00111100", "MOV AH, 3Ch", "Create-file function"},
		{"10110001 00000000", "MOV CL, 0", "File attributes"},
		{"10001101 00011110", "LEA DX, [filename]", "File name"},
		{"11001101 00100001", "INT 21h", "System call - create"},
		{"10110100 01000000", "MOV AH, 40h", "Write-file function"},
		{"10111001 " + bits8(n), fmt.Sprintf("MOV CX, %d", n), byteCount("Write", n)},
		{"11001101 00100001", "INT 21h", "System call - write"},
		{"10110100 00111110", "MOV AH, 3Eh", "Close-file function"},
		{"11001101 00100001", "INT 21h", "System call - close"},
	}
}

// loadListing stores a byte at addr in RAM.
func loadListing(hex, binary string, addr int) []instruction {
	return []instruction{
		{"10110000 " + binary[:4] + " " + binary[4:], "MOV AL, " + hex + "h", ""},
		{"10100010 " + bits8(addr) + " " + bits8(addr>>8), fmt.Sprintf("MOV [%04Xh], AL", addr), ""},
	}
}

// sendListing moves a byte from RAM to the USB output port.
func sendListing(addr int) []instruction {
	return []instruction{
		{"10100000 " + bits8(addr) + " " + bits8(addr>>8), fmt.Sprintf("MOV AL, [%04Xh]", addr), "Load byte from memory"},
		{"10111010 11111000 00000011", "MOV DX, 03F8h", "USB output port"},
		{"11101110", "OUT DX, AL", "Send byte over USB"},
	}
}

func storeListing(addr int) []instruction {
	return []instruction{
		{"10100010 " + bits8(addr) + " " + bits8(addr>>8), fmt.Sprintf("MOV [%04Xh], AL", addr), "Store in memory"},
	}
}

func bits8(v int) string {
	return fmt.Sprintf("%08b", v&0xFF)
}

func byteCount(verb string, n int) string {
	if n == 1 {
		return verb + " 1 byte"
	}
	return fmt.Sprintf("%s %d bytes", verb, n)
}
