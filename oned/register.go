package oned

import "github.com/ericlevine/barcodefont"

func init() {
	// One stateless encoder serves every Code 128 application profile.
	factory := func() barcodefont.Encoder { return NewCode128Encoder() }
	barcodefont.RegisterEncoder(barcodefont.SymbologyCode128, factory)
	barcodefont.RegisterEncoder(barcodefont.SymbologyGS1128, factory)
	barcodefont.RegisterEncoder(barcodefont.SymbologyISBT128, factory)
}
