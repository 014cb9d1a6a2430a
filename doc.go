// Package bdelta implements a block-matching delta engine: given a
// reference and a target byte sequence, it discovers a sequence of
// matches — (p1, p2, num) triples such that reference[p1:p1+num] equals
// target[p2:p2+num] — which together form a compact description of the
// target relative to the reference.
//
// The engine runs in passes. Each [Pass] call slides a rolling hash over
// the still-unmatched ranges of the target, probes a hash table built
// over the still-unmatched ranges of the reference, and extends
// candidate hits into maximal matches. Calling Pass repeatedly with
// decreasing block sizes recovers progressively smaller matches in the
// gaps left by earlier, coarser passes.
//
// bdelta does not define a patch file format, does not compress the
// literal bytes between matches, and does not provide any integrity or
// streaming guarantees — it only computes the match list. Turning that
// list into a patch, and applying the patch, is the caller's job.
package bdelta
