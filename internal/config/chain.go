package config

import "context"

type chain []Loader

// Chain returns a Loader that runs each loader over the same paths and
// merges their models in order. Loaders ignore files they do not own, so a
// directory may mix formats.
func Chain(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) Load(ctx context.Context, paths ...string) (*Model, error) {
	model := &Model{}
	for _, l := range c {
		m, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	return model, nil
}
