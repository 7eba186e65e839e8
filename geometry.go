package voro2d

import "math"

// stepInt converts a to an integer, rounding toward negative infinity: a
// point exactly on bx steps to column nx (and is rejected
// non-periodically), a point exactly on ax steps to column 0.
func stepInt(a float64) int {
	return int(math.Floor(a))
}

// stepMod is floor-mod: it returns a nonnegative representative of a
// modulo b (b > 0), unlike Go's %, which follows the sign of a.
func stepMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// stepDiv is floor-division: the number of whole multiples of b (b > 0)
// that must be subtracted from a to bring it into [0, b).
func stepDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// putRemap computes the block index for (x,y), remapping the coordinates
// into the primary domain along any periodic axis. It reports false when a
// non-periodic axis is out of [a,b).
func (c *Container) putRemap(x, y float64) (block int, rx, ry float64, ok bool) {
	i := stepInt((x - c.cfg.AX) * c.xsp)
	if c.cfg.XPeriodic {
		li := stepMod(i, c.nx)
		x += c.boxx * float64(li-i)
		i = li
	} else if i < 0 || i >= c.nx {
		return 0, 0, 0, false
	}

	j := stepInt((y - c.cfg.AY) * c.ysp)
	if c.cfg.YPeriodic {
		lj := stepMod(j, c.ny)
		y += c.boxy * float64(lj-j)
		j = lj
	} else if j < 0 || j >= c.ny {
		return 0, 0, 0, false
	}

	return i + c.nx*j, x, y, true
}

// remap computes the block index for (x,y) along with the integer
// periodic-image offset (ai,aj) such that the original (x,y) equals the
// returned primary-domain (rx,ry) shifted by ai/aj whole domain widths.
// Like putRemap, remap leaves the caller's point untouched — the returned
// coordinates are always the primary-domain image.
func (c *Container) remap(x, y float64) (ai, aj, ci, cj int, rx, ry float64, block int, ok bool) {
	ci = stepInt((x - c.cfg.AX) * c.xsp)
	if ci < 0 || ci >= c.nx {
		if !c.cfg.XPeriodic {
			return 0, 0, 0, 0, 0, 0, 0, false
		}
		ai = stepDiv(ci, c.nx)
		x -= float64(ai) * (c.cfg.BX - c.cfg.AX)
		ci -= ai * c.nx
	}

	cj = stepInt((y - c.cfg.AY) * c.ysp)
	if cj < 0 || cj >= c.ny {
		if !c.cfg.YPeriodic {
			return 0, 0, 0, 0, 0, 0, 0, false
		}
		aj = stepDiv(cj, c.ny)
		y -= float64(aj) * (c.cfg.BY - c.cfg.AY)
		cj -= aj * c.ny
	}

	return ai, aj, ci, cj, x, y, ci + c.nx*cj, true
}
