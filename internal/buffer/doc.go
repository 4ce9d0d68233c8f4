// Package buffer holds a note as an ordered list of lines.
//
// Line numbers are 1-based. Get, Set and DeleteAt accept 1..Len();
// InsertAt also accepts Len()+1, which appends. Out-of-range numbers fail
// with an *IndexError wrapping ErrIndexOutOfRange and leave the buffer
// unchanged.
package buffer
