package container_image

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/docker/docker/pkg/jsonmessage"
)

const pushingStatus = "Pushing"

// decodeProgress reads the engine's JSON message stream lazily. An error message in the stream,
// or a stream that cannot be decoded, is yielded once and ends the sequence.
func decodeProgress(r io.Reader) iter.Seq2[ProgressEvent, error] {
	return func(yield func(ProgressEvent, error) bool) {
		decoder := json.NewDecoder(r)
		for {
			var message jsonmessage.JSONMessage
			if err := decoder.Decode(&message); err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(nil, fmt.Errorf("decoding push progress: %w", err))
				return
			}

			if message.Error != nil {
				yield(nil, fmt.Errorf("pushing image: %w", message.Error))
				return
			}
			if message.ErrorMessage != "" {
				yield(nil, fmt.Errorf("pushing image: %s", message.ErrorMessage))
				return
			}

			event, ok := progressEvent(message)
			if !ok {
				continue
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

func progressEvent(message jsonmessage.JSONMessage) (ProgressEvent, bool) {
	switch {
	case message.Status == "":
		return nil, false
	case message.Status == pushingStatus:
		if message.ID == "" || message.ProgressMessage == "" {
			return nil, false
		}
		return LayerProgress{LayerID: message.ID, Progress: message.ProgressMessage}, true
	default:
		return Tick{}, true
	}
}
