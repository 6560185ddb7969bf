package imaging

import (
	"fmt"
	"time"
)

// Request names the inputs and output of one catalogue operation.
type Request struct {
	Op     Operation
	Source string
	Dest   string
	// Mask optionally names a stored image used as the mask gate.
	Mask string
}

// Processor runs operations against the images held in a Store.
//
// A Run reads its source (and mask) snapshot, computes the result without
// holding any lock, then stores it under the destination name. Runs that
// target different destinations proceed in parallel; concurrent runs that
// target the same destination race and the last Put wins.
type Processor struct {
	store *Store
}

// NewProcessor returns a Processor over store.
func NewProcessor(store *Store) *Processor {
	return &Processor{store: store}
}

// Store returns the underlying store.
func (p *Processor) Store() *Store { return p.store }

// Run executes req and stores the result under req.Dest.
//
// Preconditions are checked in order before any pixel work, and a failed
// Run leaves the Store unchanged:
//  1. Op is set, Source and Dest are non-empty (ErrInvalidArgument).
//  2. Source is stored (ErrNotFound).
//  3. Mask, when named, is stored (ErrNotFound).
//  4. Op parameters and mask compatibility (see Apply).
func (p *Processor) Run(req Request) (*Image, error) {
	img, err := p.run(req)
	if err != nil {
		Logger().Warn("operation rejected", "source", req.Source, "dest", req.Dest, "error", err)
		return nil, err
	}
	return img, nil
}

func (p *Processor) run(req Request) (*Image, error) {
	if req.Op == nil {
		return nil, fmt.Errorf("run: operation is nil: %w", ErrInvalidArgument)
	}
	name := req.Op.Name()
	if req.Source == "" || req.Dest == "" {
		return nil, fmt.Errorf("%s: source and destination names are required: %w", name, ErrInvalidArgument)
	}

	src, ok := p.store.Get(req.Source)
	if !ok {
		return nil, fmt.Errorf("%s: source image %q: %w", name, req.Source, ErrNotFound)
	}

	var mask *Mask
	if req.Mask != "" {
		maskImg, ok := p.store.Get(req.Mask)
		if !ok {
			return nil, fmt.Errorf("%s: mask image %q: %w", name, req.Mask, ErrNotFound)
		}
		mask = NewMask(maskImg)
	}

	start := time.Now()
	out, err := Apply(src, req.Op, mask)
	if err != nil {
		return nil, err
	}
	p.store.Put(req.Dest, out)

	Logger().Debug("operation applied",
		"op", name,
		"source", req.Source,
		"mask", req.Mask,
		"dest", req.Dest,
		"size", out.String(),
		"elapsed", time.Since(start))
	return out, nil
}
