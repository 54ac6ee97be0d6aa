// Package encoding turns a rendered PNG frame sequence into an H.264 video.
//
// The ffmpeg command line is assembled with ffmpeg-go and executed under the
// caller's context so cancelling a render kills the encoder. ffmpeg writes
// machine-readable progress to stdout; those key=value blocks are parsed into
// Progress updates for logging.
package encoding
