package oracle

import (
	"context"
	"debug/elf"
	"fmt"
	"os/exec"
	"regexp"

	"veccmp/internal/errors"
)

// vectorMnemonic matches the RVV configuration instructions (vsetvl, vsetvli,
// vsetivli). Any vector loop the compiler emits must configure the vector
// unit, so their presence in a function's disassembly is the signature.
var vectorMnemonic = regexp.MustCompile(`vseti?vli?`)

// BinarySource derives a Verdict by disassembling every named symbol in the
// compiled binary. This is the expensive path, one objdump invocation per
// symbol, but it reflects what the compiler actually emitted rather than
// what it reported, so it is authoritative when no record file exists.
type BinarySource struct {
	Path    string
	Objdump string // objdump command, must understand the target ISA
}

func (s *BinarySource) Verdict(ctx context.Context) (Verdict, error) {
	f, err := elf.Open(s.Path)
	if err != nil {
		return nil, &errors.ConfigurationError{Detail: fmt.Sprintf("opening %s as ELF: %v", s.Path, err)}
	}
	defer f.Close()

	if f.Machine != elf.EM_RISCV {
		return nil, &errors.ConfigurationError{
			Detail: fmt.Sprintf("vector detection is implemented only for RISC-V binaries, %s targets %v", s.Path, f.Machine),
		}
	}

	symbols, err := f.Symbols()
	if err != nil {
		return nil, &errors.ConfigurationError{Detail: fmt.Sprintf("reading symbol table of %s: %v", s.Path, err)}
	}

	verdict := make(Verdict)
	for _, sym := range symbols {
		if sym.Name == "" {
			continue
		}
		vectorized, err := s.scanSymbol(ctx, sym.Name)
		if err != nil {
			return nil, err
		}
		verdict[sym.Name] = vectorized
	}
	return verdict, nil
}

func (s *BinarySource) scanSymbol(ctx context.Context, symbol string) (bool, error) {
	cmd := exec.CommandContext(ctx, s.Objdump,
		"-j", ".text", "-D", "--disassemble="+symbol, s.Path)
	out, err := cmd.Output()
	if err != nil {
		return false, &errors.ExternalToolError{
			Tool: fmt.Sprintf("%s --disassemble=%s", s.Objdump, symbol),
			Err:  err,
		}
	}
	return vectorMnemonic.Match(out), nil
}
