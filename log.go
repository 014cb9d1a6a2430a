package bdelta

import (
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// logSubPass emits one structured debug entry per Pass call, in the style
// of ulikunitz-lz's logger.WithFields call sites; gapBytes and
// matchesFound are totals over all of that call's sub-passes, which are
// not logged one by one. A nil logger (the Options default) makes every
// call here a no-op.
func logSubPass(logger *logrus.Logger, blockSize, minMatch int, global bool, gapBytes, matchesFound int) {
	if logger == nil {
		return
	}
	mode := "local"
	if global {
		mode = "global"
	}
	logger.WithFields(logrus.Fields{
		"block_size":    blockSize,
		"min_match":     minMatch,
		"mode":          mode,
		"gap_bytes":     humanize.Bytes(uint64(gapBytes)),
		"matches_found": matchesFound,
	}).Debug("bdelta: sub-pass complete")
}

// logMatch emits one trace-level entry for m. DebugDump calls it once per
// match in the list; matches are not logged as a pass discovers them.
func logMatch(logger *logrus.Logger, m Match) {
	if logger == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"p1":  m.P1,
		"p2":  m.P2,
		"num": humanize.Bytes(uint64(m.Num)),
	}).Trace("bdelta: match")
}
