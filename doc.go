// Package binframe is a configurable binary serialization toolkit built
// around length-prefixed recursive framing: nested, variable-length values
// (strings, vectors, options, user records) are framed as self-describing
// byte regions, so decoding never reads past a value's boundary.
//
// An Encoder builds a byte sequence; a Parser consumes one. Under matching
// options the two are bit-exact inverses for every supported type. Writer and
// Reader are the stream-backed twins over io.Writer/io.Reader.
package binframe
