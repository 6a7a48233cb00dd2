package asm

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v', ',':
		return true
	}
	return false
}

// NextWord returns the word starting at or after *pos and moves *pos past
// it. Quoted spans ('...' and "...") are kept whole, separators included;
// a backslash inside a span escapes the following byte. Outside a span a
// backslash only keeps a following quote from opening one. The empty
// string means the line is exhausted.
func NextWord(line string, pos *int) string {
	i := *pos
	for i < len(line) && isSeparator(line[i]) {
		i++
	}
	start := i

	var quote byte
	for i < len(line) {
		c := line[i]
		if quote != 0 {
			i++
			if c == '\\' && i < len(line) {
				i++
			} else if c == quote {
				break
			}
			continue
		}
		if isSeparator(c) {
			break
		}
		switch c {
		case '\\':
			if i+1 < len(line) && (line[i+1] == '\'' || line[i+1] == '"') {
				i += 2
				continue
			}
		case '\'', '"':
			quote = c
		}
		i++
	}

	*pos = i
	return line[start:i]
}

// Words splits a whole line.
func Words(line string) []string {
	var words []string
	pos := 0
	for {
		w := NextWord(line, &pos)
		if w == "" {
			return words
		}
		words = append(words, w)
	}
}

func isComment(word string) bool {
	return len(word) > 0 && word[0] == ';'
}
