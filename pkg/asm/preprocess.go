package asm

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// DirectivePrefix starts every preprocessor line.
const DirectivePrefix = '%'

type macro struct {
	name  string
	value string
	line  int
}

// splitLines breaks src into lines without producing a phantom empty line
// for a trailing newline.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseDefine reads "%define NAME value..." and returns the name and value.
func parseDefine(line string) (string, string, error) {
	rest := strings.TrimLeft(line[len("%define"):], " \t\r\f\v")
	nameEnd := strings.IndexAny(rest, " \t\r\f\v")
	if nameEnd == -1 {
		nameEnd = len(rest)
	}
	name := rest[:nameEnd]
	if !IsLabelName(name) {
		return "", "", newFault(SyntaxFault, "invalid macro name: %q", name)
	}
	value := strings.TrimSpace(rest[nameEnd:])
	return name, value, nil
}

// Preprocess removes directive lines and expands %define macros. Directive
// lines are replaced by empty lines so line numbers stay aligned with the
// original source.
func Preprocess(src, file string, logger *slog.Logger, rep Reporter) (string, error) {
	logger = loggerOrDiscard(logger)
	rep = reporterOrDiscard(rep)

	macros := make(map[string]macro)
	var out strings.Builder

	for i, line := range splitLines(src) {
		lineNo := i + 1
		if line == "" || line[0] != DirectivePrefix {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}

		pos := 0
		directive := NextWord(line, &pos)[1:]
		if directive != "define" {
			return "", &Fault{Kind: SyntaxFault, File: file, Line: lineNo,
				Msg: "invalid preprocessor directive: " + line}
		}

		name, value, err := parseDefine(line)
		if err != nil {
			return "", atLocation(err, file, lineNo)
		}
		logger.Debug("found a macro declaration", "name", name, "value", value, "line", lineNo)
		if prev, exists := macros[name]; exists {
			rep.Warn(Diagnostic{File: file, Line: lineNo,
				Msg: fmt.Sprintf("macro redeclared: %q, first declared on line %d", name, prev.line)})
		}
		macros[name] = macro{name: name, value: value, line: lineNo}
		out.WriteByte('\n')
	}

	// Longest names first, so FOO_BAR is not split apart by FOO.
	ordered := make([]macro, 0, len(macros))
	for _, m := range macros {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].name) != len(ordered[j].name) {
			return len(ordered[i].name) > len(ordered[j].name)
		}
		return ordered[i].name < ordered[j].name
	})

	text := out.String()
	for _, m := range ordered {
		idx := strings.Index(text, m.name)
		if idx == -1 {
			continue
		}
		if m.value == "" {
			return "", &Fault{Kind: SyntaxFault, File: file, Line: strings.Count(text[:idx], "\n") + 1,
				Msg: "invalid use of empty macro \"" + m.name + "\""}
		}
		logger.Debug("replacing macro", "name", m.name, "value", m.value)
		text = strings.ReplaceAll(text, m.name, m.value)
	}
	return text, nil
}
