package ledger

import (
	"strconv"
	"sync/atomic"
	"time"
)

// idGenerator issues ids shaped like the epoch-millisecond ids found in older
// datasets, with a per-process counter suffix so two adds within the same
// millisecond never collide.
type idGenerator struct {
	seq uint64
	now func() time.Time
}

func newIDGenerator() *idGenerator {
	return &idGenerator{now: time.Now}
}

func (g *idGenerator) Next() string {
	n := atomic.AddUint64(&g.seq, 1)
	return strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + strconv.FormatUint(n, 10)
}
