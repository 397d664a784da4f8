package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// TDD tag policy
	TDDClassMarker Code = 1001
	TDDRedRefactor Code = 1002
	TDDMissingTag  Code = 1003

	// Ввод-вывод
	IOUnreadable Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:    "Unknown error",
	TDDClassMarker: "Class-level TDD marker",
	TDDRedRefactor: "Red or refactor TDD marker",
	TDDMissingTag:  "Missing TDD marker",
	IOUnreadable:   "Unreadable file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TDD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
