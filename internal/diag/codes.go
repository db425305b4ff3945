package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// классификация и сопоставление контейнеров
	ReoInfo             Code = 1000
	ReoNoDestination    Code = 1001
	ReoAmbiguousMatch   Code = 1002
	ReoStdlibRouted     Code = 1003
	ReoMatched          Code = 1004
	ReoDanglingDecision Code = 1005

	// слияние и чистка
	MrgInfo             Code = 2000
	MrgDuplicateSkipped Code = 2001
	MrgForeignPurged    Code = 2002
	MrgImportPurged     Code = 2003
	MrgGeneratedRemoved Code = 2004

	IOLoadTreeError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		ReoInfo:             "Reorganization information",
		ReoNoDestination:    "Generated container has no destination",
		ReoAmbiguousMatch:   "Generated container matches several destinations",
		ReoStdlibRouted:     "Container routed to the stdlib container",
		ReoMatched:          "Generated container matched a destination",
		ReoDanglingDecision: "Merge decision refers to an unknown node",
		MrgInfo:             "Merge information",
		MrgDuplicateSkipped: "Structural duplicate not inserted",
		MrgForeignPurged:    "Duplicate foreign declaration removed",
		MrgImportPurged:     "Redundant import removed",
		MrgGeneratedRemoved: "Generated container removed",
		IOLoadTreeError:     "I/O load tree error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("REO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MRG%04d", ic)
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
