package local

import "github.com/aura-studio/freetier-lambda/function"

// ServeOption is either a local Option or a function.Option.
type ServeOption any

type serveOptionBag struct {
	local    []Option
	function []function.Option
}

func (b *serveOptionBag) apply(opts ...ServeOption) {
	for _, opt := range opts {
		switch o := opt.(type) {
		case Option:
			b.local = append(b.local, o)
		case function.Option:
			b.function = append(b.function, o)
		case serveConfigOption:
			o.apply(b)
		}
	}
}
