// ABOUTME: Package documentation for the public framecast API
// ABOUTME: Explains the output stream variants and their guarantees
//
// Package framecast streams raw RGB video frames to a live-streaming sink
// (normally an ffmpeg subprocess pushing RTMP) at a fixed frame rate.
//
// Two schedulers are offered. RepeaterOutputStream keeps the sink fed by
// re-sending the most recently supplied frame; it holds no buffer and is
// last-value-wins. BufferedOutputStream reorders frames by sequence number
// across concurrent producers and drift-corrects its emission cadence; when
// it has nothing pending it repeats the last frame so the sink never runs
// dry.
package framecast
