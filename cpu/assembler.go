// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// mnemonicMap maps upper case mnemonics to opcodes.
var mnemonicMap = func() map[string]Opcode {
	m := make(map[string]Opcode, len(argMap))
	for op := range argMap {
		m[op.String()] = op
	}
	return m
}()

// Predefined system equates
var sysEquate = map[string]string{
	"MEMORY_SIZE":  fmt.Sprintf("%#x", MEMORY_SIZE),
	"PORT_CONSOLE": fmt.Sprintf("%#x", PORT_CONSOLE),
	"IN_EOF":       fmt.Sprintf("%#x", IN_EOF),
}

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// splitLine strips the comment from a line, and splits it into the
// mnemonic and its comma separated operands.
func splitLine(line string) (mnemonic string, operands []string) {
	line, _, _ = strings.Cut(line, ";")
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	mnemonic = line
	rest := ""
	if n := strings.IndexFunc(line, unicode.IsSpace); n >= 0 {
		mnemonic = line[:n]
		rest = strings.TrimSpace(line[n:])
	}

	if len(rest) == 0 {
		return
	}

	for _, operand := range strings.Split(rest, ",") {
		operands = append(operands, strings.TrimSpace(operand))
	}

	return
}

// parseRegister parses a register token, 'R' or 'r' followed by 0-7.
func parseRegister(word string) (reg uint8, err error) {
	if len(word) != 2 || (word[0] != 'R' && word[0] != 'r') || word[1] < '0' || word[1] > '7' {
		err = ErrParseRegister(word)
		return
	}

	reg = word[1] - '0'
	return
}

// parseImmediate parses an unsigned 16-bit decimal or 0x prefixed
// hexadecimal token.
func parseImmediate(word string) (value uint16, err error) {
	base := 10
	digits := word
	if len(word) > 2 && word[0] == '0' && (word[1] == 'x' || word[1] == 'X') {
		base = 16
		digits = word[2:]
	}

	v64, perr := strconv.ParseUint(digits, base, 16)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)
	return
}

// parseInstruction encodes a mnemonic and its operands.
func parseInstruction(mnemonic string, operands []string) (ins Instruction, err error) {
	op, ok := mnemonicMap[strings.ToUpper(mnemonic)]
	if !ok {
		err = ErrMnemonic(mnemonic)
		return
	}

	arg := op.Arg()
	if len(operands) != arg.Count() {
		err = ErrOperandCount
		return
	}

	ins.Opcode = op
	if arg.HasRegister() {
		ins.Register, err = parseRegister(operands[0])
		if err != nil {
			return
		}
		operands = operands[1:]
	}
	if arg.HasWord() {
		ins.Operand, err = parseImmediate(operands[0])
		if err != nil {
			return
		}
	}

	return
}

// EncodeLine encodes a single line of source into buf at cursor, and
// returns the cursor following the encoded bytes.
//
// Blank and comment-only lines leave the cursor unchanged. On error,
// nothing written to buf for this line is valid.
func EncodeLine(buf []byte, cursor int, line string) (next int, err error) {
	next = cursor

	mnemonic, operands := splitLine(line)
	if len(mnemonic) == 0 {
		return
	}

	ins, err := parseInstruction(mnemonic, operands)
	if err != nil {
		return
	}

	if cursor < 0 || cursor+ins.Size() > len(buf) {
		err = ErrImageFull
		return
	}

	copy(buf[cursor:], ins.Append(nil))
	next = cursor + ins.Size()

	return
}

// Assembler assembles line oriented source text into a Program.
//
// In addition to instructions, it supports `.equ NAME VALUE` equates,
// which replace whole operand tokens, and `$(expr)` compile-time
// expressions over the integer equates.
type Assembler struct {
	Verbose  bool   // If set, verbosely logs the assembler actions.
	Capacity int    // Image capacity; MEMORY_SIZE if zero.
	Line     []Line // List of assembled lines.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates, such as registers.
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand evaluates $(...) expressions in a line.
func (asm *Assembler) expand(line string) (out string, err error) {
	out = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
			return str
		}
		if value < 0 {
			// Leave as a negative number, rejected as an immediate.
			return fmt.Sprintf("%d", value)
		}
		return fmt.Sprintf("%#x", value)
	})

	return
}

// parseLine handles directives and equates for a single line, and returns
// the mnemonic and operands of the remaining instruction, if any.
func (asm *Assembler) parseLine(text string) (mnemonic string, operands []string, err error) {
	text, _, _ = strings.Cut(text, ";")

	text, err = asm.expand(text)
	if err != nil {
		return
	}

	words := strings.Fields(text)
	if len(words) > 0 && strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	mnemonic, operands = splitLine(text)
	for n, operand := range operands {
		equate, ok := asm.Equate[operand]
		if ok {
			operands[n] = equate
		}
	}

	return
}

// Parse parses an input stream into a Program.
// The first failing line aborts the assembly with an *ErrSyntax.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	capacity := asm.Capacity
	if capacity == 0 {
		capacity = MEMORY_SIZE
	}

	asm.Line = asm.Line[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	buf := make([]byte, capacity)
	cursor := 0

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var mnemonic string
		var operands []string
		mnemonic, operands, err = asm.parseLine(text)
		if err != nil {
			return
		}
		if len(mnemonic) == 0 {
			continue
		}

		line := mnemonic + " " + strings.Join(operands, ", ")
		var next int
		next, err = EncodeLine(buf, cursor, line)
		if err != nil {
			return
		}

		var code Instruction
		code, err = Decode(buf[:next], uint32(cursor))
		if err != nil {
			return
		}

		asm.Line = append(asm.Line, Line{
			LineNo:  lineno,
			Address: cursor,
			Text:    strings.TrimSpace(strings.SplitN(text, ";", 2)[0]),
			Code:    code,
		})
		cursor = next
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: append([]Line(nil), asm.Line...),
	}

	return
}
