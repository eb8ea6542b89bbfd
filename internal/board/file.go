package board

import (
	"fmt"
	"os"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

// File serves a precomputed board document.
type File struct {
	Path string
}

// NewFile returns a board source reading path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Build reads the board document. If the document records the request it
// was built for, that request must equal req.
func (f *File) Build(req types.BoardRequest) (types.Board, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return types.Board{}, fmt.Errorf("%w: read %s: %w", types.ErrBoardConstruction, f.Path, err)
	}
	doc, err := decode(data)
	if err != nil {
		return types.Board{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	if doc.Request != nil && *doc.Request != req {
		return types.Board{}, fmt.Errorf("%w: %s was built for %s %s %s %s", types.ErrBoardConstruction, f.Path,
			doc.Request.SolarTerm, doc.Request.LunarMonth, doc.Request.DayPillar, doc.Request.HourPillar)
	}
	return doc.Board, nil
}
