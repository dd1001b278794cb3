package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnexpectedEOF    Code = 2002
	SynExpectMismatch   Code = 2003
	SynUnknownDirective Code = 2004

	// Ввод-вывод / разрешение путей
	IOInfo              Code = 4000
	IOCannotOpen        Code = 4001
	IOUnableToFind      Code = 4002
	IOIncludeTooDeep    Code = 4003
	IOSnapshotMalformed Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnterminatedString:       "Unterminated quoted string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedEOF:            "Unexpected end of script",
	SynExpectMismatch:           "Expected token mismatch",
	SynUnknownDirective:         "Unknown directive",
	IOInfo:                      "I/O information",
	IOCannotOpen:                "Cannot open included script",
	IOUnableToFind:              "Unable to find input file",
	IOIncludeTooDeep:            "INCLUDE nested too deeply",
	IOSnapshotMalformed:         "Malformed session snapshot",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
