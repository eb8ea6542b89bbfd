// Package board obtains Six Ren boards from outside the process: from a
// board document on disk or from an external board engine. Both return
// types.ErrBoardConstruction when no usable board comes back.
package board

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

// document is the on-disk and on-the-wire board shape. Request is optional;
// when present it names the inputs the board was built for.
type document struct {
	Request     *types.BoardRequest `yaml:"request,omitempty"`
	types.Board `yaml:",inline"`
}

var errEmptyDocument = errors.New("board document is empty")

// Decode parses a board document. YAML and JSON are both accepted.
func Decode(data []byte) (types.Board, error) {
	doc, err := decode(data)
	if err != nil {
		return types.Board{}, err
	}
	return doc.Board, nil
}

func decode(data []byte) (document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("%w: decode: %w", types.ErrBoardConstruction, err)
	}
	if len(doc.Generals) == 0 && len(doc.Plate) == 0 && len(doc.Formation) == 0 {
		return document{}, fmt.Errorf("%w: %w", types.ErrBoardConstruction, errEmptyDocument)
	}
	return doc, nil
}

// Encode renders a board, with the request it was built for, as YAML.
func Encode(req types.BoardRequest, b types.Board) ([]byte, error) {
	return yaml.Marshal(document{Request: &req, Board: b})
}

// FromConfig returns the board source selected by cfg. A non-empty file
// overrides the configured source.
func FromConfig(cfg types.BoardConfig, file string, log zerolog.Logger) (types.BoardBuilder, error) {
	if file != "" {
		return NewFile(file), nil
	}
	switch cfg.Source {
	case types.BoardSourceFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("%w: board.file is empty", types.ErrBoardNotConfigured)
		}
		return NewFile(cfg.File), nil
	case types.BoardSourceCommand:
		if cfg.Command == "" {
			return nil, fmt.Errorf("%w: board.command is empty", types.ErrBoardNotConfigured)
		}
		return NewCommand(cfg.Command, cfg.Args, cfg.Timeout, log), nil
	default:
		return nil, types.ErrBoardSourceUnknown
	}
}
