package canvas

// SceneOption configures a Scene during creation.
//
// Example:
//
//	// Deterministic geometry for tests
//	s := canvas.NewScene(canvas.WithTextMeasurer(canvas.FixedAdvance(0.5)))
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	measurer TextMeasurer
	capacity int
	firstID  uint32
}

func defaultSceneOptions() sceneOptions {
	return sceneOptions{
		measurer: nil, // resolved to text.Default in NewScene
		capacity: 64,
		firstID:  1,
	}
}

// WithTextMeasurer sets the measurer used to size text labels.
func WithTextMeasurer(m TextMeasurer) SceneOption {
	return func(o *sceneOptions) {
		o.measurer = m
	}
}

// WithCapacityHint preallocates room for n elements.
func WithCapacityHint(n int) SceneOption {
	return func(o *sceneOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithFirstID sets the first id handed out by the scene. Zero is reserved
// and ignored.
func WithFirstID(id uint32) SceneOption {
	return func(o *sceneOptions) {
		if id > 0 {
			o.firstID = id
		}
	}
}
