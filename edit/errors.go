package edit

import "errors"

// ErrNoSelection is returned when a gesture is started without any live
// element to act on.
var ErrNoSelection = errors.New("edit: no selected element")
