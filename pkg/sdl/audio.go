package sdl

import (
	"fmt"

	"github.com/mnafees/chopper/pkg/beeper"
	"github.com/veandco/go-sdl2/sdl"
)

// queued audio is kept below this many frames to bound the latency
const maxQueuedFrames = 3

// audioOutput plays the beeper through the SDL audio queue, optionally
// recording everything it plays.
type audioOutput struct {
	device   sdl.AudioDeviceID
	beeper   *beeper.Beeper
	recorder *beeper.Recorder
}

func openAudio(wavFile string) (*audioOutput, error) {
	spec := &sdl.AudioSpec{
		Freq:     beeper.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  1024,
	}
	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	out := &audioOutput{
		device: device,
		beeper: beeper.New(beeper.SampleRate, beeper.ToneHz),
	}
	if wavFile != "" {
		out.recorder, err = beeper.NewRecorder(wavFile, beeper.SampleRate)
		if err != nil {
			sdl.CloseAudioDevice(device)
			return nil, err
		}
	}

	sdl.PauseAudioDevice(device, false)
	return out, nil
}

// update queues one frame of tone or silence.
func (a *audioOutput) update(on bool) error {
	buf := a.beeper.Samples(a.beeper.SamplesPerFrame(), on)
	if a.recorder != nil {
		if err := a.recorder.Write(buf); err != nil {
			return err
		}
	}

	frameBytes := uint32(len(buf.Data))
	if !on || sdl.GetQueuedAudioSize(a.device) > maxQueuedFrames*frameBytes {
		return nil
	}
	if err := sdl.QueueAudio(a.device, beeper.Bytes(buf)); err != nil {
		return fmt.Errorf("queueing audio: %w", err)
	}
	return nil
}

func (a *audioOutput) close() error {
	sdl.CloseAudioDevice(a.device)
	if a.recorder != nil {
		return a.recorder.Close()
	}
	return nil
}
