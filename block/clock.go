package block

import lndclock "github.com/lightningnetwork/lnd/clock"

// Clock is the time source genesis construction and tests use instead
// of a bare time.Now(), so timestamp-ordering behavior is deterministic
// under test.
type Clock = lndclock.Clock

// DefaultClock is the real wall-clock implementation.
var DefaultClock Clock = lndclock.NewDefaultClock()
