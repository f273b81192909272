package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/onchainrugs/rugweave"
)

// ErrNotFound is returned by a ParamSource for unknown tokens.
var ErrNotFound = errors.New("token not found")

// ParamSource resolves a token id to its render parameters. Reading them
// from the chain is the job of an implementation outside this package.
type ParamSource interface {
	Params(ctx context.Context, tokenID uint64) (rugweave.RenderParameters, error)
}

// DirSource reads <tokenId>.json, or <tokenId>.toml, from a directory.
type DirSource struct {
	Dir string
}

// Params implements ParamSource.
func (d DirSource) Params(ctx context.Context, tokenID uint64) (rugweave.RenderParameters, error) {
	if err := ctx.Err(); err != nil {
		return rugweave.RenderParameters{}, err
	}
	base := filepath.Join(d.Dir, strconv.FormatUint(tokenID, 10))
	for _, ext := range []string{".json", ".toml"} {
		p, err := rugweave.LoadParameters(base + ext)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return rugweave.RenderParameters{}, fmt.Errorf("token %d: %w", tokenID, err)
		}
		p.TokenID = tokenID
		return p, nil
	}
	return rugweave.RenderParameters{}, fmt.Errorf("token %d: %w", tokenID, ErrNotFound)
}

// MapSource serves parameters from memory.
type MapSource map[uint64]rugweave.RenderParameters

// Params implements ParamSource.
func (m MapSource) Params(_ context.Context, tokenID uint64) (rugweave.RenderParameters, error) {
	p, ok := m[tokenID]
	if !ok {
		return rugweave.RenderParameters{}, fmt.Errorf("token %d: %w", tokenID, ErrNotFound)
	}
	p = p.Clone()
	p.TokenID = tokenID
	return p, nil
}
