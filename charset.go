package main

type Charset int

const (
	CharsetASCII Charset = iota
	CharsetBlocks
	CharsetBraille
)

func parseCharset(name string) Charset {
	switch name {
	case "braille":
		return CharsetBraille
	case "blocks":
		return CharsetBlocks
	default:
		return CharsetASCII
	}
}

func densityToChar(density float64, charset Charset) rune {
	switch charset {
	case CharsetBraille:
		return densityToBraille(density)
	case CharsetBlocks:
		return densityToBlock(density)
	default:
		return densityToASCII(density)
	}
}

func densityToBraille(density float64) rune {
	switch {
	case density > 1.0:
		return '⣿'
	case density > 0.9:
		return '⣾'
	case density > 0.8:
		return '⣶'
	case density > 0.7:
		return '⣦'
	case density > 0.6:
		return '⣤'
	case density > 0.5:
		return '⣀'
	case density > 0.4:
		return '⡀'
	case density > 0.3:
		return '⠄'
	case density > 0.2:
		return '⠂'
	case density > 0.1:
		return '⠁'
	}
	return ' '
}

func densityToBlock(density float64) rune {
	switch {
	case density > 1.0:
		return '█'
	case density > 0.875:
		return '▓'
	case density > 0.75:
		return '▒'
	case density > 0.625:
		return '░'
	case density > 0.5:
		return '▄'
	case density > 0.375:
		return '▃'
	case density > 0.25:
		return '▂'
	case density > 0.125:
		return '▁'
	}
	return ' '
}

func densityToASCII(density float64) rune {
	switch {
	case density > 1.0:
		return '@'
	case density > 0.8:
		return '#'
	case density > 0.6:
		return '%'
	case density > 0.4:
		return 'o'
	case density > 0.3:
		return '='
	case density > 0.2:
		return '+'
	case density > 0.15:
		return '-'
	case density > 0.1:
		return '.'
	case density > 0.05:
		return '`'
	}
	return ' '
}
