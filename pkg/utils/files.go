package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadBase is added to label offsets when exporting symbols.
const LoadBase = 0x200

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// DefaultOutputPath swaps the extension of inPath for ext.
func DefaultOutputPath(inPath, ext string) string {
	old := filepath.Ext(inPath)
	if old == "" {
		return inPath + ext
	}
	return strings.TrimSuffix(inPath, old) + ext
}

func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file %q: %w", path, err)
	}
	return string(data), nil
}

func WriteImage(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write binary file %q: %w", path, err)
	}
	return nil
}

// HexDump writes data as lower-case hex pairs, 16 per line.
func HexDump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for i, b := range data {
		if i > 0 {
			if i%16 == 0 {
				bw.WriteByte('\n')
			} else {
				bw.WriteByte(' ')
			}
		}
		fmt.Fprintf(bw, "%02x", b)
	}
	if len(data) > 0 {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

type Symbol struct {
	Name    string `yaml:"name"`
	Offset  string `yaml:"offset"`
	Address string `yaml:"address"`
}

type symbolFile struct {
	LoadBase string   `yaml:"load_base"`
	Symbols  []Symbol `yaml:"symbols"`
}

// WriteSymbols exports a label table as YAML, ordered by offset.
func WriteSymbols(w io.Writer, labels map[string]uint16) error {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if labels[names[i]] != labels[names[j]] {
			return labels[names[i]] < labels[names[j]]
		}
		return names[i] < names[j]
	})

	out := symbolFile{LoadBase: fmt.Sprintf("0x%03X", LoadBase), Symbols: []Symbol{}}
	for _, name := range names {
		off := labels[name]
		out.Symbols = append(out.Symbols, Symbol{
			Name:    name,
			Offset:  fmt.Sprintf("0x%04X", off),
			Address: fmt.Sprintf("0x%04X", LoadBase+int(off)),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode symbols: %w", err)
	}
	return enc.Close()
}
