package lexer

// Точки синхронизации после ошибки: пробельные символы и структурные
// разделители. Сам разделитель не поглощается.
func isSyncByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v',
		'(', ')', '{', '}', '[', ']', ';', ',':
		return true
	}
	return false
}

// skipToSync consumes whole scalars up to the next sync point or EOF.
func (lx *Lexer) skipToSync() {
	for !lx.cursor.EOF() && !isSyncByte(lx.cursor.Peek()) {
		lx.bumpRune()
	}
}
