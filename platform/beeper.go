package platform

import "github.com/veandco/go-sdl2/sdl"

const (
	beepFreq   = 48000 // samples per second
	beepPitch  = 440   // tone frequency in Hz
	beepVolume = 32

	// about a quarter second of audio is queued at a time. short enough
	// that the tone stops promptly when the sound timer runs out, long
	// enough that topping the queue up once per frame never underruns
	beepChunk = beepFreq / 4
)

// beeper plays a fixed square wave while the core's sound timer is
// running. The wave is synthesised once up front and queued to an SDL
// audio device; pausing the device silences it.
type beeper struct {
	id      sdl.AudioDeviceID
	wave    []byte
	playing bool
}

func newBeeper() (*beeper, error) {
	spec := &sdl.AudioSpec{
		Freq:     beepFreq,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	var actual sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, spec, &actual, 0)
	if err != nil {
		return nil, err
	}

	b := &beeper{id: id, wave: make([]byte, beepChunk)}

	halfPeriod := beepFreq / beepPitch / 2
	for i := range b.wave {
		if (i/halfPeriod)%2 == 0 {
			b.wave[i] = 128 + beepVolume
		} else {
			b.wave[i] = 128 - beepVolume
		}
	}

	return b, nil
}

// set transitions the beeper between playing and silent, topping up the
// queued audio while the tone is held.
func (b *beeper) set(on bool) {
	if on && sdl.GetQueuedAudioSize(b.id) < uint32(len(b.wave)) {
		// errors queueing audio only ever shorten the tone; ignore them
		_ = sdl.QueueAudio(b.id, b.wave)
	}

	if on == b.playing {
		return
	}
	b.playing = on
	sdl.PauseAudioDevice(b.id, !on)
}

func (b *beeper) close() {
	sdl.CloseAudioDevice(b.id)
}
