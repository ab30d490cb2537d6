package token

var keywords = map[string]Kind{
	"let":      KwLet,
	"fn":       KwFn,
	"if":       KwIf,
	"else":     KwElse,
	"import":   KwImport,
	"from":     KwFrom,
	"return":   KwReturn,
	"extern":   KwExtern,
	"while":    KwWhile,
	"type":     KwType,
	"struct":   KwStruct,
	"trait":    KwTrait,
	"enum":     KwEnum,
	"new":      KwNew,
	"delete":   KwDelete,
	"sizeof":   KwSizeof,
	"as":       KwAs,
	"static":   KwStatic,
	"inline":   KwInline,
	"abstract": KwAbstract,
	"mut":      KwMut,
	"null":     NullLit,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
