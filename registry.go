// SPDX-License-Identifier: EPL-2.0

package soundboard

import (
	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/formats/aiff"
	"github.com/ik5/soundboard/formats/mp3"
	"github.com/ik5/soundboard/formats/vorbis"
	"github.com/ik5/soundboard/formats/wav"
)

// DefaultRegistry knows every format the module can decode.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}
