package lynx

// The engine carries two independent generators. Walker turns draw from an
// 8-bit shift-register generator; blob turns draw from a 31-bit linear
// congruential generator whose seed is recorded in solution files. Both are
// instance state so that concurrent games never share a stream.

// lynxRand advances the 8-bit generator and returns the next value.
func (g *Game) lynxRand() uint8 {
	n := g.prng1>>2 - g.prng1
	if g.prng1&2 == 0 {
		n--
	}
	g.prng1 = g.prng1>>1 | g.prng2&0x80
	g.prng2 = g.prng2<<1 | n&0x01
	return g.prng1 ^ g.prng2
}

// twRand advances the 31-bit generator and returns the new value.
func (g *Game) twRand() uint32 {
	g.prng0 = (g.prng0*1103515245 + 12345) & 0x7fffffff
	return g.prng0
}
