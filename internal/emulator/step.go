package emulator

import (
	"fmt"

	"gameboy-emulator/internal/cpu"
	"gameboy-emulator/internal/memory"
)

// fetchDecodeExecute fetches the opcode at the CPU's current PC, dispatches
// through the CB-prefixed table when needed, and executes it. Shared by the
// Emulator façade and EmulatorCore so the two never drift on instruction
// staging.
func fetchDecodeExecute(c *cpu.CPU, mmu *memory.MMU) (int, error) {
	opcode := fetchInstruction(c, mmu)

	if opcode == 0xCB {
		return executeCBInstruction(c, mmu)
	}

	return executeInstruction(c, mmu, opcode)
}

// fetchInstruction reads the opcode at the current PC and advances PC. If
// the HALT bug tripped on the previous HALT, PC fails to advance this one
// time, so the following fetchInstruction call re-reads the same byte.
func fetchInstruction(c *cpu.CPU, mmu *memory.MMU) uint8 {
	pc := c.PC

	dmaController := mmu.GetDMAController()
	if !dmaController.CanCPUAccessMemory(pc) {
		// During DMA, CPU reads 0xFF from blocked memory
		opcode := uint8(0xFF)
		if !c.HaltBug {
			c.PC = pc + 1
		}
		c.HaltBug = false
		return opcode
	}

	opcode := mmu.ReadByte(pc)
	if !c.HaltBug {
		c.PC = pc + 1
	}
	c.HaltBug = false
	return opcode
}

// executeInstruction executes a regular (non-CB) instruction.
func executeInstruction(c *cpu.CPU, mmu *memory.MMU, opcode uint8) (int, error) {
	pc := c.PC

	params := readInstructionParameters(c, mmu, opcode)

	cycles, err := c.ExecuteInstruction(mmu, opcode, params...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute instruction 0x%02X at PC 0x%04X: %w",
			opcode, pc-1, err)
	}

	return int(cycles), nil
}

// executeCBInstruction executes a CB-prefixed instruction.
func executeCBInstruction(c *cpu.CPU, mmu *memory.MMU) (int, error) {
	cbOpcode := fetchInstruction(c, mmu)

	cycles, err := c.ExecuteCBInstruction(mmu, cbOpcode)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CB instruction 0x%02X: %v", cbOpcode, err)
	}

	// CB instructions have 4 extra cycles for the CB prefix
	return int(cycles) + 4, nil
}

// readInstructionParameters reads the immediate bytes an opcode consumes,
// advancing PC for each one via fetchInstruction.
func readInstructionParameters(c *cpu.CPU, mmu *memory.MMU, opcode uint8) []uint8 {
	switch opcode {
	// Immediate 8-bit instructions
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E: // LD r,n
		fallthrough
	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE: // Arithmetic/logical with immediate
		fallthrough
	case 0x18, 0x20, 0x28, 0x30, 0x38: // Relative jumps
		fallthrough
	case 0xE0, 0xE2, 0xF0, 0xF2: // I/O operations
		fallthrough
	case 0xE8, 0xF8: // ADD SP,n and LD HL,SP+n (signed 8-bit)
		return []uint8{fetchInstruction(c, mmu)}

	// Immediate 16-bit instructions (little-endian)
	case 0x01, 0x11, 0x21, 0x31: // LD rr,nn
		fallthrough
	case 0x08: // LD (nn),SP
		fallthrough
	case 0xC2, 0xC3, 0xCA, 0xD2, 0xDA: // Absolute jumps
		fallthrough
	case 0xC4, 0xCC, 0xCD, 0xD4, 0xDC: // Calls
		fallthrough
	case 0xEA, 0xFA: // LD (nn),A and LD A,(nn)
		low := fetchInstruction(c, mmu)
		high := fetchInstruction(c, mmu)
		return []uint8{low, high}

	// No parameters
	default:
		return nil
	}
}
