// Package audio plays sampled sound clips through a Mixer.
//
// A Stream produces signed 16-bit PCM. Streams that can be repositioned
// also implement SeekableStream. A SoundClip owns one stream and drives it
// through the mixer: it starts, pauses, resumes and stops playback, and
// tracks a coarse playback state that Poll refreshes from the mixer.
//
// Requests a stream cannot honour, such as seeking a non-seekable stream
// or changing the playback speed, are logged as warnings through
// retro.Logger and otherwise ignored.
//
//	clip := audio.NewSoundClip(mixer, audio.NewPCM(samples, 22050, false),
//	    audio.WithType(audio.SFXSound), audio.WithVolume(200))
//	clip.Play()
//	...
//	clip.Poll()
//	if clip.State() == audio.StateStopped { ... }
package audio
