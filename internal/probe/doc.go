// Package probe inspects recordings with a single ffprobe JSON call. comcut
// only needs container-level facts (duration, size, format) and a short
// stream summary for its logs; it never reasons about codecs.
package probe
