package aging

import "time"

// millisecondThreshold separates second and millisecond Unix timestamps.
const millisecondThreshold = 10_000_000_000

// agingMultiplier slows aging for higher frames, in percent of normal speed.
var agingMultiplier = map[FrameLevel]int64{
	FrameNone:    100,
	FrameBronze:  75,
	FrameSilver:  50,
	FrameGold:    20,
	FrameDiamond: 10,
}

// Calculator derives wear levels from the time since a rug was cleaned,
// using the same thresholds as the maintenance contract.
type Calculator struct {
	DirtLevel1   time.Duration `toml:"dirt_level1" mapstructure:"dirt_level1"`
	DirtLevel2   time.Duration `toml:"dirt_level2" mapstructure:"dirt_level2"`
	AgingAdvance time.Duration `toml:"aging_advance" mapstructure:"aging_advance"`
}

// DefaultCalculator returns the thresholds used when no contract
// configuration is available.
func DefaultCalculator() Calculator {
	return Calculator{
		DirtLevel1:   3 * 24 * time.Hour,
		DirtLevel2:   7 * 24 * time.Hour,
		AgingAdvance: 7 * 24 * time.Hour,
	}
}

// elapsed returns whole seconds from lastCleaned to now. lastCleaned is a
// Unix timestamp in seconds, or in milliseconds when implausibly large.
func elapsed(lastCleaned int64, now time.Time) int64 {
	if lastCleaned > millisecondThreshold {
		lastCleaned /= 1000
	}
	return now.Unix() - lastCleaned
}

// DirtLevel returns 0 (clean), 1 (dirty) or 2 (very dirty). Gold and
// Diamond frames never get dirty; Silver takes twice as long and Bronze
// half as long again.
func (c Calculator) DirtLevel(lastCleaned int64, now time.Time, frame FrameLevel) int {
	since := elapsed(lastCleaned, now)
	if since < 0 || frame.Rank() >= FrameGold.Rank() {
		return 0
	}
	l1 := int64(c.DirtLevel1 / time.Second)
	l2 := int64(c.DirtLevel2 / time.Second)
	switch frame {
	case FrameSilver:
		l1, l2 = l1*2, l2*2
	case FrameBronze:
		l1, l2 = l1*3/2, l2*3/2
	}
	switch {
	case since >= l2:
		return 2
	case since >= l1:
		return 1
	}
	return 0
}

// AgingLevel advances base by one level per interval since lastCleaned,
// capped at MaxTextureLevel. Higher frames stretch the interval.
func (c Calculator) AgingLevel(lastCleaned int64, now time.Time, frame FrameLevel, base int) int {
	since := elapsed(lastCleaned, now)
	if since < 0 {
		return min(max(base, 0), MaxTextureLevel)
	}
	mult, ok := agingMultiplier[frame]
	if !ok {
		mult = 100
	}
	interval := int64(c.AgingAdvance/time.Second) * 100 / mult
	if interval <= 0 {
		return MaxTextureLevel
	}
	return min(base+int(since/interval), MaxTextureLevel)
}
