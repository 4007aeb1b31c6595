// Package media turns uploaded audio into what the speech engine consumes.
//
// FFmpeg normalizes arbitrary input to a mono 16-bit PCM WAV and cuts
// fixed-length slices out of it; Segmenter drives the slicing into an
// ordered list of chunk files; Workspace owns the per-request temporary
// directory those files live in and removes it on every exit path.
//
// The external tools sit behind the Normalizer, Slicer and Prober
// interfaces so orchestration can be exercised without ffmpeg installed.
package media
