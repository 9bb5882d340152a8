// ABOUTME: Video fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Frame types and wire conversion functions
// Package video provides fundamental video frame types for the framecast
// library.
//
// This package defines the core types used throughout framecast:
//   - Format: Describes a stream format (width, height, frame rate)
//   - Frame: One frame of normalized RGB samples in [0.0, 1.0]
//
// Frames convert to the sink's 8-bit wire form only at the sink boundary:
// each sample becomes uint8(clip(255*v, 0, 255)), truncated.
//
// Example:
//
//	format := video.Format{Width: 640, Height: 480, FPS: 30}
//	frame := video.White(format)
//	raw := frame.Bytes() // 640*480*3 bytes, row-major RGB
package video
